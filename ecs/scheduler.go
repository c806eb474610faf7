package ecs

type System interface {
	Update(w *World)
}

// Stage orders groups of systems within a tick.
type Stage int

const (
	// StageInput always runs, paused or not.
	StageInput Stage = iota
	// StageSimulation is skipped while the scheduler is paused.
	StageSimulation
	// StagePresentation runs after the simulation and while paused.
	StagePresentation
	stageCount
)

type Scheduler struct {
	stages [stageCount][]System
	paused bool
}

// NewScheduler places systems in the simulation stage.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(StageSimulation, system)
	}
	return s
}

func (s *Scheduler) Add(stage Stage, system System) {
	if system == nil || stage < 0 || stage >= stageCount {
		return
	}
	s.stages[stage] = append(s.stages[stage], system)
}

func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

func (s *Scheduler) Update(w *World) {
	for stage, systems := range s.stages {
		if s.paused && Stage(stage) == StageSimulation {
			continue
		}
		for _, system := range systems {
			system.Update(w)
		}
	}
}

// Systems returns every system in run order.
func (s *Scheduler) Systems() []System {
	var systems []System
	for _, stage := range s.stages {
		systems = append(systems, stage...)
	}
	return systems
}
