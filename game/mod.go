// Package game holds the Stone Age board, the players and every mutation the
// engine can apply to them. It makes no decisions: the AI reads snapshots and
// the engine is the only caller of the mutators.
package game

// Placement asks for Count workers of one player on Space.
type Placement struct {
	Space ActionSpace `json:"space"`
	Count int         `json:"count"`
}
