package matching

// Weights is the fixed dimension weight vector. It is injected through
// Config rather than read from package state so tests can score with
// alternate weightings.
type Weights struct {
	Skill      float64 `json:"skill"`
	Investment float64 `json:"investment"`
	Stage      float64 `json:"stage"`
	Interest   float64 `json:"interest"`
	Engagement float64 `json:"engagement"`
}

func DefaultWeights() Weights {
	return Weights{
		Skill:      0.40,
		Investment: 0.25,
		Stage:      0.15,
		Interest:   0.15,
		Engagement: 0.05,
	}
}

// Config carries the tunable knobs of the engine. CapacityMultiplier
// converts cumulative earnings into assumed investable capital; the
// business rule behind the default of 2 is unvalidated, so it stays
// configurable.
type Config struct {
	Weights            Weights `json:"weights"`
	CapacityMultiplier float64 `json:"capacity_multiplier"`
}

func DefaultConfig() Config {
	return Config{
		Weights:            DefaultWeights(),
		CapacityMultiplier: 2,
	}
}
