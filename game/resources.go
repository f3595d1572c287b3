package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResourceType identifies one of the five inventory pools.
type ResourceType int

const (
	Wood ResourceType = iota
	Brick
	Stone
	Gold
	Food
)

const NumResources = 5

var resourceNames = [NumResources]string{"Wood", "Brick", "Stone", "Gold", "Food"}

// BuildingResources are the resources that count towards building costs and
// the end-game resource bonus.
var BuildingResources = []ResourceType{Wood, Brick, Stone, Gold}

func (r ResourceType) String() string {
	if r < 0 || int(r) >= NumResources {
		return "Unknown"
	}
	return resourceNames[r]
}

// Resources is an inventory (or a cost vector) indexed by ResourceType.
type Resources [NumResources]int

// NewCost builds a cost vector from per-type amounts.
func NewCost(amounts map[ResourceType]int) Resources {
	var r Resources
	for t, n := range amounts {
		r[t] = n
	}
	return r
}

func (r Resources) Get(t ResourceType) int {
	return r[t]
}

func (r *Resources) Add(t ResourceType, amount int) {
	r[t] += amount
}

// Covers reports whether r holds at least cost of every resource.
func (r Resources) Covers(cost Resources) bool {
	for i := range cost {
		if r[i] < cost[i] {
			return false
		}
	}
	return true
}

// Missing returns how many units of each resource r lacks to pay cost.
func (r Resources) Missing(cost Resources) Resources {
	var missing Resources
	for i := range cost {
		if cost[i] > r[i] {
			missing[i] = cost[i] - r[i]
		}
	}
	return missing
}

// Spend removes cost from r. Nothing is removed when r does not cover cost.
func (r *Resources) Spend(cost Resources) error {
	if !r.Covers(cost) {
		return fmt.Errorf("%w: missing %s", ErrInsufficientResources, r.Missing(cost))
	}
	for i := range cost {
		r[i] -= cost[i]
	}
	return nil
}

// Total counts wood, brick, stone and gold. Food is not part of it.
func (r Resources) Total() int {
	total := 0
	for _, t := range BuildingResources {
		total += r[t]
	}
	return total
}

func (r Resources) IsZero() bool {
	return r == Resources{}
}

// String renders the non-zero entries, e.g. "2 Wood, 2 Stone".
func (r Resources) String() string {
	var parts []string
	for i, n := range r {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, ResourceType(i)))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

func (r Resources) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, NumResources)
	for i, n := range r {
		m[strings.ToLower(resourceNames[i])] = n
	}
	return json.Marshal(m)
}

func (r *Resources) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*r = Resources{}
	for i, name := range resourceNames {
		r[i] = m[strings.ToLower(name)]
	}
	return nil
}
