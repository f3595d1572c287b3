package game

const (
	GatheringCapacity        = 7
	StandardOfferSize        = 4
	StandardFarmYield        = 1
	StandardToolDie          = 4
	StandardMaxTools         = 3
	StandardMaxWorkers       = 10
	StandardShortfallPenalty = 10
)

// NewStandardRules returns the board used by every simulated game.
func NewStandardRules() Rules {
	r := Rules{
		OfferSize:        StandardOfferSize,
		FarmYield:        StandardFarmYield,
		ToolDie:          StandardToolDie,
		MaxTools:         StandardMaxTools,
		MaxWorkers:       StandardMaxWorkers,
		ShortfallPenalty: StandardShortfallPenalty,
	}
	r.Spaces[HuntingGrounds] = SpaceRule{Capacity: GatheringCapacity, DieSize: 2, Yield: Food}
	r.Spaces[Forest] = SpaceRule{Capacity: GatheringCapacity, DieSize: 3, Yield: Wood}
	r.Spaces[ClayPit] = SpaceRule{Capacity: GatheringCapacity, DieSize: 4, Yield: Brick}
	r.Spaces[Quarry] = SpaceRule{Capacity: GatheringCapacity, DieSize: 5, Yield: Stone}
	r.Spaces[River] = SpaceRule{Capacity: GatheringCapacity, DieSize: 6, Yield: Gold}
	r.Spaces[Farm] = SpaceRule{Capacity: 1}
	r.Spaces[ToolMaker] = SpaceRule{Capacity: 1}
	r.Spaces[Hut] = SpaceRule{Capacity: 2}
	r.Spaces[CivilizationCardSlot] = SpaceRule{Capacity: 1}
	r.Spaces[BuildingSlot] = SpaceRule{Capacity: 1}
	return r
}
