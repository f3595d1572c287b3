// Package experiments plays batches of AI-only games and stores their records.
package experiments

import (
	"context"
	"fmt"

	"stoneage/engine"
	"stoneage/experiments/metrics"
	"stoneage/game"
	"stoneage/player"

	"github.com/rs/zerolog/log"
)

// Batch describes a run of seeded games.
type Batch struct {
	Games   int
	Seed    uint64 // game i is seeded with Seed+i
	Setup   game.Setup
	Records string // directory; no records are written when empty
	Format  string
	// Agents builds the seats of one game; heuristic players when nil.
	Agents func(players int) []player.Agent
}

func heuristicAgents(players int) []player.Agent {
	agents := make([]player.Agent, players)
	for i := range agents {
		agents[i] = player.NewHeuristic()
	}
	return agents
}

// RunBatch plays b.Games games one after another and writes game and round
// records when a directory is configured.
func RunBatch(ctx context.Context, b Batch) ([]engine.Summary, error) {
	if b.Games < 1 {
		return nil, fmt.Errorf("%w: games must be positive, got %d", game.ErrConfiguration, b.Games)
	}
	newAgents := b.Agents
	if newAgents == nil {
		newAgents = heuristicAgents
	}

	var writer *metrics.Writer
	if b.Records != "" {
		w, err := metrics.NewWriter(b.Records, b.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to create experiment writer: %w", err)
		}
		writer = w
	}

	log.Info().Msgf("starting batch of %d games...", b.Games)

	summaries := make([]engine.Summary, 0, b.Games)
	gameRecords := []metrics.GameRecord{}
	roundRecords := []metrics.RoundRecord{}
	for i := 0; i < b.Games; i++ {
		seed := b.Seed + uint64(i)
		summary, err := runGame(ctx, b.Setup, seed, newAgents(b.Setup.Players))
		if err != nil {
			return summaries, fmt.Errorf("game %d: %w", i+1, err)
		}
		summaries = append(summaries, summary)

		gameRecords = append(gameRecords, metrics.GameRecord{ID: i + 1, Seed: seed, GameMetric: summary.Metric})
		for _, rm := range summary.RoundMetrics {
			roundRecords = append(roundRecords, metrics.RoundRecord{Game: i + 1, RoundMetric: rm})
		}

		log.Info().Msgf("completed game %d of %d with winner: %s", i+1, b.Games, summary.WinnerName)
	}

	if writer == nil {
		return summaries, nil
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summaries, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteRoundRecords(roundRecords); err != nil {
		return summaries, fmt.Errorf("failed to write round records: %w", err)
	}
	log.Info().Msgf("stored %d game records in %s", len(gameRecords), writer.Dir())
	return summaries, nil
}

func runGame(ctx context.Context, setup game.Setup, seed uint64, agents []player.Agent) (engine.Summary, error) {
	setup.ID = ""
	state, err := game.NewGameState(setup, game.NewRandomRoller(seed))
	if err != nil {
		return engine.Summary{}, err
	}
	e, err := engine.LocalEngine(state, agents, engine.WithCollector(metrics.NewCollector()))
	if err != nil {
		return engine.Summary{}, err
	}
	return e.Run(ctx)
}
