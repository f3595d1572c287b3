package game

import "fmt"

// ActionSpace is a board location workers can be placed on.
type ActionSpace int

const (
	HuntingGrounds ActionSpace = iota
	Forest
	ClayPit
	Quarry
	River
	Farm
	ToolMaker
	Hut
	CivilizationCardSlot
	BuildingSlot
)

const NumActionSpaces = 10

// ActionSpaces lists every space in declared order. Resolution walks it
// gathering first, then special, then markets, and the AI breaks utility ties
// by position in it.
var ActionSpaces = [NumActionSpaces]ActionSpace{
	HuntingGrounds,
	Forest,
	ClayPit,
	Quarry,
	River,
	Farm,
	ToolMaker,
	Hut,
	CivilizationCardSlot,
	BuildingSlot,
}

// SpaceClass groups spaces by how they resolve.
type SpaceClass int

const (
	Gathering SpaceClass = iota
	Special
	Market
)

var spaceNames = [NumActionSpaces]string{
	"Hunting Grounds",
	"Forest",
	"Clay Pit",
	"Quarry",
	"River",
	"Farm",
	"Tool Maker",
	"Hut",
	"Civilization Card",
	"Building",
}

var classNames = map[SpaceClass]string{
	Gathering: "gathering",
	Special:   "special",
	Market:    "market",
}

func (a ActionSpace) Valid() bool {
	return a >= 0 && int(a) < NumActionSpaces
}

func (a ActionSpace) String() string {
	if !a.Valid() {
		return fmt.Sprintf("ActionSpace(%d)", int(a))
	}
	return spaceNames[a]
}

func (a ActionSpace) Class() SpaceClass {
	switch {
	case a <= River:
		return Gathering
	case a <= Hut:
		return Special
	default:
		return Market
	}
}

func (c SpaceClass) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "unknown"
}

func (a ActionSpace) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid action space %d", int(a))
	}
	return []byte(spaceNames[a]), nil
}

func (a *ActionSpace) UnmarshalText(text []byte) error {
	space, ok := ParseActionSpace(string(text))
	if !ok {
		return fmt.Errorf("unknown action space %q", text)
	}
	*a = space
	return nil
}

// ParseActionSpace looks a space up by its display name.
func ParseActionSpace(name string) (ActionSpace, bool) {
	for i, n := range spaceNames {
		if n == name {
			return ActionSpace(i), true
		}
	}
	return 0, false
}

// SpacesOfClass returns the spaces of one class in declared order.
func SpacesOfClass(class SpaceClass) []ActionSpace {
	var spaces []ActionSpace
	for _, a := range ActionSpaces {
		if a.Class() == class {
			spaces = append(spaces, a)
		}
	}
	return spaces
}
