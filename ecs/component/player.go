package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/collision"
)

type Player struct {
	MoveSpeed     float64
	MaxFallSpeed  float64
	AccelGrounded float64
	AccelAirborne float64

	CoyoteTime   float64
	JumpBuffer   float64
	JumpCooldown float64

	Gravity         float64
	MaxJumpVelocity float64
	MinJumpVelocity float64

	GrabSize cp.Vector
	GrabMask collision.Layer

	Velocity   cp.Vector
	SmoothingX float64
	FacingLeft bool
	Grabbing   bool
	Pushing    bool

	CoyoteLeft   float64
	BufferLeft   float64
	CooldownLeft float64
}

// SetJump derives gravity and jump velocities from the jump arc.
func (p *Player) SetJump(maxHeight, minHeight, timeToApex float64) {
	p.Gravity = -(2 * maxHeight) / (timeToApex * timeToApex)
	p.MaxJumpVelocity = math.Abs(p.Gravity) * timeToApex
	p.MinJumpVelocity = math.Sqrt(2 * math.Abs(p.Gravity) * minHeight)
}

// CanJump is true while coyote time, the jump buffer and the cooldown all allow it.
func (p *Player) CanJump() bool {
	return p.CoyoteLeft > 0 && p.BufferLeft > 0 && p.CooldownLeft <= 0
}

func (p *Player) OnJump() {
	p.CoyoteLeft = 0
	p.BufferLeft = 0
	p.CooldownLeft = p.JumpCooldown
}

// GrabBounds is the grab box on the facing side of body.
func (p *Player) GrabBounds(body cp.BB) cp.BB {
	cy := (body.B + body.T) / 2
	halfH := p.GrabSize.Y / 2
	if p.FacingLeft {
		return cp.BB{L: body.L - p.GrabSize.X, B: cy - halfH, R: body.L, T: cy + halfH}
	}
	return cp.BB{L: body.R, B: cy - halfH, R: body.R + p.GrabSize.X, T: cy + halfH}
}

var PlayerComponent = NewComponent[Player]()
