package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/prefabs"
)

const platformDispatchScript = `
__velocity := velocity(__t)
`

// PlatformScript runs a tengo script defining velocity(t) that returns {x, y} in
// units per second.
type PlatformScript struct {
	name     string
	compiled *tengo.Compiled
}

// LoadPlatformScript compiles a script from prefabs/scripts.
func LoadPlatformScript(name string) (*PlatformScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("platform script %s: %w", name, err)
	}
	return CompilePlatformScript(name, src)
}

func CompilePlatformScript(name string, src []byte) (*PlatformScript, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), platformDispatchScript...))
	_ = script.Add("__t", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("platform script %s: %w", name, err)
	}
	return &PlatformScript{name: name, compiled: compiled}, nil
}

func (s *PlatformScript) Name() string {
	return s.name
}

func (s *PlatformScript) Velocity(t float64) (cp.Vector, error) {
	if err := s.compiled.Set("__t", t); err != nil {
		return cp.Vector{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return cp.Vector{}, fmt.Errorf("platform script %s: %w", s.name, err)
	}
	out := s.compiled.Get("__velocity").Map()
	if out == nil {
		return cp.Vector{}, fmt.Errorf("platform script %s: velocity must return a map", s.name)
	}
	x, okX := scriptNumber(out["x"])
	y, okY := scriptNumber(out["y"])
	if !okX || !okY {
		return cp.Vector{}, fmt.Errorf("platform script %s: velocity needs numeric x and y, got %v", s.name, out)
	}
	return cp.Vector{X: x, Y: y}, nil
}

func scriptNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
