package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/milk9111/kinematic/levels"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", filepath.Join("levels", "level.schema.json"), "path to write the level JSON schema")
	flag.Parse()

	if err := writeSchema(outPath, buildSchema()); err != nil {
		log.Fatalf("levelschema: %v", err)
	}
	log.Printf("levelschema: wrote %s", outPath)
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(new(levels.Level))
	schema.Title = "Level"
	schema.Description = "Tile grid and entity placements loaded by the game"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
