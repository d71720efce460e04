package generator

// Default generator configuration constants.
const (
	DefaultMaxSwapIterations = 1000
	DefaultVarianceThreshold = 0.5
	DefaultPositionWeight    = 2.0
	DefaultAttributeWeight   = 1.0
)

// Config holds the tunables of a generation call. It is plain data and
// never persisted.
type Config struct {
	// MaxSwapIterations caps the number of optimizer passes.
	MaxSwapIterations int `json:"max_swap_iterations"`
	// VarianceThreshold stops the optimizer once the score drops below it.
	VarianceThreshold float64 `json:"variance_threshold"`
	// PositionWeight scales the position imbalance term.
	PositionWeight float64 `json:"position_weight"`

	TechnikWeight           float64 `json:"technik_weight"`
	FitnessWeight           float64 `json:"fitness_weight"`
	SpielverstaendnisWeight float64 `json:"spielverstaendnis_weight"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxSwapIterations:       DefaultMaxSwapIterations,
		VarianceThreshold:       DefaultVarianceThreshold,
		PositionWeight:          DefaultPositionWeight,
		TechnikWeight:           DefaultAttributeWeight,
		FitnessWeight:           DefaultAttributeWeight,
		SpielverstaendnisWeight: DefaultAttributeWeight,
	}
}

// normalized replaces out-of-range values with defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.MaxSwapIterations <= 0 {
		c.MaxSwapIterations = d.MaxSwapIterations
	}
	if c.VarianceThreshold < 0 {
		c.VarianceThreshold = d.VarianceThreshold
	}
	if c.PositionWeight < 0 {
		c.PositionWeight = d.PositionWeight
	}
	if c.TechnikWeight < 0 {
		c.TechnikWeight = d.TechnikWeight
	}
	if c.FitnessWeight < 0 {
		c.FitnessWeight = d.FitnessWeight
	}
	if c.SpielverstaendnisWeight < 0 {
		c.SpielverstaendnisWeight = d.SpielverstaendnisWeight
	}
	return c
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithConfig replaces the whole configuration. Invalid fields fall back to defaults.
func WithConfig(cfg Config) Option {
	return func(g *Generator) {
		g.cfg = cfg.normalized()
	}
}

// WithMaxSwapIterations caps optimizer passes.
func WithMaxSwapIterations(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.cfg.MaxSwapIterations = n
		}
	}
}

// WithVarianceThreshold sets the early-exit score.
func WithVarianceThreshold(t float64) Option {
	return func(g *Generator) {
		if t >= 0 {
			g.cfg.VarianceThreshold = t
		}
	}
}

// WithPositionWeight sets the weight of the position imbalance term.
func WithPositionWeight(w float64) Option {
	return func(g *Generator) {
		if w >= 0 {
			g.cfg.PositionWeight = w
		}
	}
}

// WithAttributeWeights sets per-attribute weights. Negative values are ignored.
func WithAttributeWeights(technik, fitness, spielverstaendnis float64) Option {
	return func(g *Generator) {
		if technik >= 0 {
			g.cfg.TechnikWeight = technik
		}
		if fitness >= 0 {
			g.cfg.FitnessWeight = fitness
		}
		if spielverstaendnis >= 0 {
			g.cfg.SpielverstaendnisWeight = spielverstaendnis
		}
	}
}
