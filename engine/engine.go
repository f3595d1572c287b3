package engine

import (
	"context"
	"errors"

	"stoneage/experiments/metrics"
	"stoneage/game"
)

// ErrGameOver is returned by Step once the game has reached Terminal.
var ErrGameOver = errors.New("game is over - no moves allowed")

type Runner interface {
	// Run steps the game until it is over or ctx is done.
	Run(ctx context.Context) (Summary, error)
}

// Summary is the outcome of a finished game.
type Summary struct {
	GameID       string                `json:"game_id"`
	Rounds       int                   `json:"rounds"`
	Scores       []game.ScoreBreakdown `json:"scores"`
	Winner       int                   `json:"winner"`
	WinnerName   string                `json:"winner_name"`
	Metric       metrics.GameMetric    `json:"-"`
	RoundMetrics []metrics.RoundMetric `json:"-"`
}
