package game

import "sort"

// Player is one seat at the table.
type Player struct {
	Name           string
	Workers        int // total, placed or not
	Placed         int
	Resources      Resources
	Tools          []int
	FoodProduction int
	Score          int
	Cards          []CivilizationCard
	Buildings      []Building
}

func NewPlayer(name string, workers int) *Player {
	return &Player{
		Name:    name,
		Workers: workers,
		Tools:   []int{},
	}
}

// Free is the number of workers not yet on the board this round.
func (p *Player) Free() int {
	return p.Workers - p.Placed
}

// BestTool returns the highest tool value, 0 without tools.
func (p *Player) BestTool() int {
	best := 0
	for _, t := range p.Tools {
		if t > best {
			best = t
		}
	}
	return best
}

// UseBestTool removes the highest tool and returns its value. Tools are
// single use.
func (p *Player) UseBestTool() int {
	if len(p.Tools) == 0 {
		return 0
	}
	best := 0
	for i, t := range p.Tools {
		if t > p.Tools[best] {
			best = i
		}
	}
	value := p.Tools[best]
	p.Tools = append(p.Tools[:best], p.Tools[best+1:]...)
	return value
}

// AddTool gives the player a tool. With maxTools already held, the weakest
// tool is replaced when value beats it. Tools stay sorted strongest first.
func (p *Player) AddTool(value, maxTools int) bool {
	if value <= 0 {
		return false
	}
	added := false
	if len(p.Tools) < maxTools {
		p.Tools = append(p.Tools, value)
		added = true
	} else if len(p.Tools) > 0 {
		weakest := 0
		for i, t := range p.Tools {
			if t < p.Tools[weakest] {
				weakest = i
			}
		}
		if value > p.Tools[weakest] {
			p.Tools[weakest] = value
			added = true
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(p.Tools)))
	return added
}

// AddWorkers grows the tribe by up to n without passing maxWorkers and
// returns how many joined.
func (p *Player) AddWorkers(n, maxWorkers int) int {
	room := maxWorkers - p.Workers
	if room <= 0 || n <= 0 {
		return 0
	}
	if n > room {
		n = room
	}
	p.Workers += n
	return n
}

// FeedResult describes one player's feeding.
type FeedResult struct {
	Player         int `json:"player"`
	Required       int `json:"required"`
	FromProduction int `json:"from_production"`
	FromStore      int `json:"from_store"`
	Shortfall      int `json:"shortfall"`
	Penalty        int `json:"penalty"`
}

// feed consumes food for every worker, production first. A shortfall empties
// the store and costs penaltyPerUnit points per missing food in one penalty.
func (p *Player) feed(penaltyPerUnit int) FeedResult {
	required := p.Workers
	res := FeedResult{Required: required}

	res.FromProduction = min(p.FoodProduction, required)
	remaining := required - res.FromProduction

	stored := p.Resources[Food]
	res.FromStore = min(stored, remaining)
	p.Resources[Food] -= res.FromStore
	remaining -= res.FromStore

	if remaining > 0 {
		res.Shortfall = remaining
		res.Penalty = remaining * penaltyPerUnit
		p.Score -= res.Penalty
	}
	return res
}

// Copy returns a deep copy safe to hand to readers.
func (p *Player) Copy() Player {
	c := *p
	c.Tools = append([]int{}, p.Tools...)
	c.Cards = append([]CivilizationCard{}, p.Cards...)
	c.Buildings = append([]Building{}, p.Buildings...)
	return c
}
