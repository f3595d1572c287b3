package communication

import "stoneage/game"

// Communicator moves snapshots between the engine and whatever displays them.
type Communicator interface {
	// Publish replaces the latest snapshot.
	Publish(s game.Snapshot) error
	// Snapshot returns a private copy of the latest snapshot, false when none
	// has been published yet.
	Snapshot() (game.Snapshot, bool)
}

// Memory is an in-process Communicator.
type Memory struct {
	latest *Latest
}

func NewMemory() *Memory {
	return &Memory{latest: &Latest{}}
}

func (m *Memory) Publish(s game.Snapshot) error {
	_, err := m.latest.Store(s)
	return err
}

func (m *Memory) Snapshot() (game.Snapshot, bool) {
	return m.latest.Load()
}
