package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Load reads a level by name, preferring levels/<name>.json on disk over the embedded
// copy, and validates it.
func Load(name string) (*Level, error) {
	file := levelFile(name)
	data, err := os.ReadFile(filepath.Join("levels", file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(strings.TrimSuffix(file, ".json"), data)
}

// Parse decodes and validates a level document.
func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e, ".schema.json") {
			continue
		}
		names = append(names, strings.TrimSuffix(path.Base(e), ".json"))
	}
	sort.Strings(names)
	return names
}

func levelFile(name string) string {
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
