package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stoneage/game"

	"github.com/rs/zerolog/log"
)

// ClientCommunicator talks to a ServerCommunicator over HTTP.
type ClientCommunicator struct {
	serverURL string
	http      *http.Client
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

// Fetch returns the server's latest snapshot.
func (cc *ClientCommunicator) Fetch() (game.Snapshot, error) {
	resp, err := cc.http.Get(cc.serverURL + "/api/state")
	if err != nil {
		return game.Snapshot{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return game.Snapshot{}, fmt.Errorf("get state: %s", resp.Status)
	}
	var s game.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode state: %w", err)
	}
	if err := s.Validate(); err != nil {
		return game.Snapshot{}, err
	}
	return s, nil
}

func (cc *ClientCommunicator) Snapshot() (game.Snapshot, bool) {
	s, err := cc.Fetch()
	if err != nil {
		log.Debug().Err(err).Msgf("polling %s", cc.serverURL)
		return game.Snapshot{}, false
	}
	return s, true
}

// Publish pushes a snapshot to the server.
func (cc *ClientCommunicator) Publish(s game.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	resp, err := cc.http.Post(cc.serverURL+"/api/state", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("post state: %s", resp.Status)
	}
	return nil
}
