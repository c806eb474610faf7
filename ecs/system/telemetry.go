package system

import (
	"github.com/milk9111/kinematic/ecs"
	"github.com/milk9111/kinematic/ecs/component"
	"github.com/milk9111/kinematic/telemetry"
)

// Publisher receives one snapshot per simulated tick.
type Publisher interface {
	Publish(s telemetry.Snapshot) bool
}

// TelemetrySystem reports every mover's latest result to a publisher.
type TelemetrySystem struct {
	publisher Publisher
	scheduler *ecs.Scheduler
	level     string
	tick      uint64
	dropped   uint64
}

func NewTelemetrySystem(publisher Publisher, level string) *TelemetrySystem {
	return &TelemetrySystem{publisher: publisher, level: level}
}

func (t *TelemetrySystem) SetLevel(level string) {
	t.level = level
}

// Watch reports the pause state of s in every snapshot. The system then belongs in
// the presentation stage so it keeps publishing while paused.
func (t *TelemetrySystem) Watch(s *ecs.Scheduler) {
	t.scheduler = s
}

// Dropped is the number of snapshots the publisher refused.
func (t *TelemetrySystem) Dropped() uint64 {
	return t.dropped
}

func (t *TelemetrySystem) Update(w *ecs.World) {
	if w == nil || t.publisher == nil {
		return
	}
	t.tick++

	snap := telemetry.Snapshot{Tick: t.tick, Level: t.level}
	if t.scheduler != nil {
		snap.Paused = t.scheduler.Paused()
	}
	ecs.ForEach(w, component.MoverComponent.Kind(), func(e ecs.Entity, mover *component.Mover) {
		if mover.Body == nil {
			return
		}
		bb := mover.Body.Bounds()
		res := mover.Body.Result()
		body := telemetry.Body{
			Entity:     e.String(),
			Kind:       bodyKind(w, e),
			X:          (bb.L + bb.R) / 2,
			Y:          (bb.B + bb.T) / 2,
			Width:      bb.R - bb.L,
			Height:     bb.T - bb.B,
			DeltaX:     res.Delta.X,
			DeltaY:     res.Delta.Y,
			Grounded:   res.Grounded,
			Sliding:    res.Sliding,
			SteppingUp: res.SteppingUp,
			HitCeiling: res.HitCeiling,
		}
		if sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
			body.State = sm.State.Name()
		}
		snap.Bodies = append(snap.Bodies, body)
	})

	if !t.publisher.Publish(snap) {
		t.dropped++
	}
}

func bodyKind(w *ecs.World, e ecs.Entity) string {
	switch {
	case ecs.Has(w, e, component.PlayerComponent.Kind()):
		return "player"
	case ecs.Has(w, e, component.PlatformComponent.Kind()):
		return "platform"
	case ecs.Has(w, e, component.BoxComponent.Kind()):
		return "box"
	default:
		return "body"
	}
}
