package prefabs

import (
	"fmt"
	"image/color"

	"github.com/milk9111/kinematic/collision"
	"github.com/milk9111/kinematic/common"
	"github.com/milk9111/kinematic/input"
	"github.com/milk9111/kinematic/kinematic"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over spec, keeping fields the file leaves out.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// MoverSpec is the resolver tuning of an actor plus its collision layers.
type MoverSpec struct {
	kinematic.Settings `yaml:",inline"`

	Layer         string   `yaml:"layer"`
	CollisionMask []string `yaml:"collision_mask"`
	PushableMask  []string `yaml:"pushable_mask"`
}

// Resolve turns layer names into masks.
func (s MoverSpec) Resolve() (kinematic.Settings, collision.Layer, error) {
	settings := s.Settings
	layer, err := collision.ParseLayers([]string{s.Layer})
	if err != nil {
		return settings, collision.LayerNone, fmt.Errorf("prefabs: mover layer: %w", err)
	}
	if len(s.CollisionMask) > 0 {
		if settings.CollisionMask, err = collision.ParseLayers(s.CollisionMask); err != nil {
			return settings, collision.LayerNone, fmt.Errorf("prefabs: collision mask: %w", err)
		}
	}
	if len(s.PushableMask) > 0 {
		if settings.PushableMask, err = collision.ParseLayers(s.PushableMask); err != nil {
			return settings, collision.LayerNone, fmt.Errorf("prefabs: pushable mask: %w", err)
		}
	}
	return settings, layer, nil
}

func defaultMoverSpec(layer string) MoverSpec {
	return MoverSpec{Settings: kinematic.DefaultSettings(), Layer: layer}
}

type PlayerSpec struct {
	Name          string     `yaml:"name"`
	Size          SizeSpec   `yaml:"size"`
	MoveSpeed     float64    `yaml:"move_speed"`
	MaxJumpHeight float64    `yaml:"max_jump_height"`
	MinJumpHeight float64    `yaml:"min_jump_height"`
	TimeToApex    float64    `yaml:"time_to_apex"`
	MaxFallSpeed  float64    `yaml:"max_fall_speed"`
	CoyoteTime    float64    `yaml:"coyote_time"`
	JumpBuffer    float64    `yaml:"jump_buffer"`
	JumpCooldown  float64    `yaml:"jump_cooldown"`
	AccelGrounded float64    `yaml:"accel_grounded"`
	AccelAirborne float64    `yaml:"accel_airborne"`
	PauseCooldown float64    `yaml:"pause_cooldown"`
	Grab          SizeSpec   `yaml:"grab"`
	Tint          *YAMLColor `yaml:"tint"`
	Mover         MoverSpec  `yaml:"mover"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:          "player",
		Size:          SizeSpec{Width: 0.8, Height: 1.6},
		MoveSpeed:     6,
		MaxJumpHeight: 4,
		MinJumpHeight: 1,
		TimeToApex:    0.4,
		MaxFallSpeed:  18,
		CoyoteTime:    0.1,
		JumpBuffer:    0.1,
		JumpCooldown:  0.2,
		AccelGrounded: 0.1,
		AccelAirborne: 0.2,
		PauseCooldown: 1,
		Grab:          SizeSpec{Width: 0.3, Height: 1.2},
		Mover:         defaultMoverSpec("pushable"),
	}
}

func LoadPlayerSpec() (PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	err := LoadSpecInto("player.yaml", &spec)
	return spec, err
}

type BoxSpec struct {
	Name         string     `yaml:"name"`
	Size         SizeSpec   `yaml:"size"`
	Gravity      float64    `yaml:"gravity"`
	MaxFallSpeed float64    `yaml:"max_fall_speed"`
	Damping      float64    `yaml:"damping"`
	FrictionLoss float64    `yaml:"friction_loss"`
	Tint         *YAMLColor `yaml:"tint"`
	Mover        MoverSpec  `yaml:"mover"`
}

func DefaultBoxSpec() BoxSpec {
	return BoxSpec{
		Name:         "box",
		Size:         SizeSpec{Width: 1, Height: 1},
		Gravity:      50,
		MaxFallSpeed: 18,
		Damping:      0.999,
		FrictionLoss: 1,
		Mover:        defaultMoverSpec("pushable"),
	}
}

func LoadBoxSpec() (BoxSpec, error) {
	spec := DefaultBoxSpec()
	err := LoadSpecInto("box.yaml", &spec)
	return spec, err
}

type PlatformSpec struct {
	Name  string     `yaml:"name"`
	Tint  *YAMLColor `yaml:"tint"`
	Mover MoverSpec  `yaml:"mover"`
}

func DefaultPlatformSpec() PlatformSpec {
	mover := defaultMoverSpec("solid")
	mover.Mass = -1
	return PlatformSpec{Name: "platform", Mover: mover}
}

func LoadPlatformSpec() (PlatformSpec, error) {
	spec := DefaultPlatformSpec()
	err := LoadSpecInto("platform.yaml", &spec)
	return spec, err
}

// LoadBindings reads input.yaml. The default bindings come back with any error.
func LoadBindings() (input.Bindings, error) {
	data, err := Load("input.yaml")
	if err != nil {
		return input.DefaultBindings(), fmt.Errorf("prefabs: load input.yaml: %w", err)
	}
	b, err := input.ParseBindings(data)
	if err != nil {
		return input.DefaultBindings(), fmt.Errorf("prefabs: %w", err)
	}
	return b, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when none was set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := common.ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}
