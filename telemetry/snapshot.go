package telemetry

// Body is the state of one mover after a tick.
type Body struct {
	Entity     string  `json:"entity"`
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	DeltaX     float64 `json:"dx"`
	DeltaY     float64 `json:"dy"`
	Grounded   bool    `json:"grounded"`
	Sliding    bool    `json:"sliding"`
	SteppingUp bool    `json:"stepping_up"`
	HitCeiling bool    `json:"hit_ceiling"`
	State      string  `json:"state,omitempty"`
}

// Snapshot is one simulation tick. Once published it must not be modified.
type Snapshot struct {
	Tick   uint64 `json:"tick"`
	Level  string `json:"level"`
	Paused bool   `json:"paused"`
	Bodies []Body `json:"bodies"`
}
