package communication

import (
	"encoding/json"
	"sync"

	"stoneage/game"
)

// Latest holds the most recent snapshot in its JSON form. Readers decode a
// private copy, so nothing shares memory with the publisher.
type Latest struct {
	mutex sync.RWMutex
	data  []byte
}

// Store encodes s and keeps it as the latest snapshot.
func (l *Latest) Store(s game.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	l.StoreJSON(data)
	return data, nil
}

// StoreJSON keeps an already encoded snapshot.
func (l *Latest) StoreJSON(data []byte) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.data = data
}

// JSON returns the encoded snapshot, nil when none is stored.
func (l *Latest) JSON() []byte {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.data
}

func (l *Latest) Load() (game.Snapshot, bool) {
	data := l.JSON()
	if data == nil {
		return game.Snapshot{}, false
	}
	var s game.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return game.Snapshot{}, false
	}
	return s, true
}
