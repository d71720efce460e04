package service

import "github.com/okian/teamforge/internal/domain/generator"

// Tuning overrides generator settings for one request. Nil fields keep the
// service configuration.
type Tuning struct {
	MaxSwapIterations       *int     `json:"max_swap_iterations,omitempty" validate:"omitempty,min=1,max=100000"`
	VarianceThreshold       *float64 `json:"variance_threshold,omitempty" validate:"omitempty,min=0"`
	PositionWeight          *float64 `json:"position_weight,omitempty" validate:"omitempty,min=0"`
	TechnikWeight           *float64 `json:"technik_weight,omitempty" validate:"omitempty,min=0"`
	FitnessWeight           *float64 `json:"fitness_weight,omitempty" validate:"omitempty,min=0"`
	SpielverstaendnisWeight *float64 `json:"spielverstaendnis_weight,omitempty" validate:"omitempty,min=0"`
}

func (t *Tuning) apply(base generator.Config) generator.Config {
	if t == nil {
		return base
	}
	if t.MaxSwapIterations != nil {
		base.MaxSwapIterations = *t.MaxSwapIterations
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{t.VarianceThreshold, &base.VarianceThreshold},
		{t.PositionWeight, &base.PositionWeight},
		{t.TechnikWeight, &base.TechnikWeight},
		{t.FitnessWeight, &base.FitnessWeight},
		{t.SpielverstaendnisWeight, &base.SpielverstaendnisWeight},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return base
}
