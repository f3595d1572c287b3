package game

import "errors"

var (
	// ErrConfiguration rejects bad setup parameters before a game starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidPlacement rejects a worker placement or market slot.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrInsufficientResources rejects a purchase the player cannot pay for.
	ErrInsufficientResources = errors.New("insufficient resources")
	// ErrFrozen is returned by every mutator once final scoring has run.
	ErrFrozen = errors.New("game is over - state is frozen")
	// ErrInvalidSnapshot rejects a snapshot that did not come from a game.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
