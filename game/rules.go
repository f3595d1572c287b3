package game

import "fmt"

// SpaceRule is the static configuration of one action space.
type SpaceRule struct {
	Capacity int          `json:"capacity"`
	DieSize  int          `json:"die_size,omitempty"` // gathering only
	Yield    ResourceType `json:"yield"`              // gathering only
}

// Rules holds every table-driven constant the state mutators apply.
type Rules struct {
	Spaces           [NumActionSpaces]SpaceRule `json:"spaces"`
	OfferSize        int                        `json:"offer_size"`
	FarmYield        int                        `json:"farm_yield"`
	ToolDie          int                        `json:"tool_die"`
	MaxTools         int                        `json:"max_tools"`
	MaxWorkers       int                        `json:"max_workers"`
	ShortfallPenalty int                        `json:"shortfall_penalty"`
}

func (r Rules) Capacity(space ActionSpace) int {
	return r.Spaces[space].Capacity
}

func (r Rules) DieSize(space ActionSpace) int {
	return r.Spaces[space].DieSize
}

// Validate rejects tables the mutators cannot apply, such as a gathering
// space without a die.
func (r Rules) Validate() error {
	for _, space := range ActionSpaces {
		rule := r.Spaces[space]
		if rule.Capacity < 1 {
			return fmt.Errorf("%w: %s needs a capacity of at least 1, got %d", ErrConfiguration, space, rule.Capacity)
		}
		if space.Class() != Gathering {
			continue
		}
		if rule.DieSize < 1 {
			return fmt.Errorf("%w: %s needs a die size of at least 1, got %d", ErrConfiguration, space, rule.DieSize)
		}
		if rule.Yield < 0 || int(rule.Yield) >= NumResources {
			return fmt.Errorf("%w: %s yields unknown resource %d", ErrConfiguration, space, int(rule.Yield))
		}
	}
	switch {
	case r.OfferSize < 1:
		return fmt.Errorf("%w: offer size must be positive, got %d", ErrConfiguration, r.OfferSize)
	case r.ToolDie < 1:
		return fmt.Errorf("%w: tool die must be positive, got %d", ErrConfiguration, r.ToolDie)
	case r.MaxTools < 1:
		return fmt.Errorf("%w: max tools must be positive, got %d", ErrConfiguration, r.MaxTools)
	case r.MaxWorkers < 1:
		return fmt.Errorf("%w: max workers must be positive, got %d", ErrConfiguration, r.MaxWorkers)
	case r.ShortfallPenalty < 0:
		return fmt.Errorf("%w: shortfall penalty cannot be negative, got %d", ErrConfiguration, r.ShortfallPenalty)
	}
	return nil
}
