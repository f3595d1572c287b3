package engine

import "stoneage/game"

type EventType int

const (
	EventPlacement EventType = iota
	EventPlacementRejected
	EventGather
	EventSpecial
	EventPurchase
	EventPurchaseFailed
	EventPurchaseSkipped
	EventFeeding
	EventFoodShortfall
	EventGameOver
)

var eventNames = map[EventType]string{
	EventPlacement:         "placement",
	EventPlacementRejected: "placement_rejected",
	EventGather:            "gather",
	EventSpecial:           "special",
	EventPurchase:          "purchase",
	EventPurchaseFailed:    "purchase_failed",
	EventPurchaseSkipped:   "purchase_skipped",
	EventFeeding:           "feeding",
	EventFoodShortfall:     "food_shortfall",
	EventGameOver:          "game_over",
}

func (e EventType) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return "unknown"
}

func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Record is one thing that happened during a game.
type Record struct {
	Round  int              `json:"round"`
	Phase  Phase            `json:"phase"`
	Type   EventType        `json:"type"`
	Player int              `json:"player"`
	Space  game.ActionSpace `json:"space"`
	Amount int              `json:"amount"`
	Detail string           `json:"detail,omitempty"`
}
