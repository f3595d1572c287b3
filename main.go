package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stoneage/communication"
	"stoneage/communication/client"
	"stoneage/communication/server"
	"stoneage/config"
	"stoneage/engine"
	"stoneage/experiments"
	"stoneage/game"
	"stoneage/logging"
	"stoneage/player"
	"stoneage/render"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the exit code: 0 on success, help or interrupt, 1 for bad
// configuration and 2 for any other failure.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(stdout, "Usage: stoneage [flags]\n%s", config.Usage())
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := logging.Setup(cfg.Log, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	switch {
	case cfg.Attach != "":
		err = attach(ctx, cfg, stdout)
	case cfg.Games > 1 || cfg.Records != "":
		err = batch(ctx, cfg, stdout)
	default:
		err = play(ctx, cfg, stdout)
	}
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case errors.Is(err, game.ErrConfiguration):
		fmt.Fprintln(stderr, err)
		return 1
	default:
		log.Error().Err(err).Msg("stopped")
		return 2
	}
}

func play(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	seed := cfg.GameSeed()
	state, err := game.NewGameState(cfg.Setup(), game.NewRandomRoller(seed))
	if err != nil {
		return err
	}
	log.Info().Msgf("seed %d", seed)

	agents := make([]player.Agent, cfg.Players)
	for i := range agents {
		agents[i] = player.NewHeuristic()
	}

	var opts []engine.Option
	var web *server.ServerCommunicator
	var memory *communication.Memory
	serverDone := make(chan error, 1)
	if cfg.Visualize {
		switch cfg.View {
		case config.ViewWeb:
			web = server.NewServerCommunicator(cfg.Addr, cfg.Refresh)
			go func() { serverDone <- web.Start(ctx) }()
			opts = append(opts, engine.WithObserver(publishTo(web)))
		case config.ViewText:
			opts = append(opts, engine.WithObserver(func(s game.Snapshot) {
				if s.Phase == engine.Placement.String() || s.Terminal {
					fmt.Fprintln(stdout, render.Full(s))
				}
			}))
		case config.ViewTUI:
			memory = communication.NewMemory()
			opts = append(opts, engine.WithObserver(publishTo(memory)))
		}
		if cfg.RoundDelay > 0 {
			opts = append(opts, engine.WithObserver(roundDelay(ctx, cfg.RoundDelay)))
		}
	}

	e, err := engine.LocalEngine(state, agents, opts...)
	if err != nil {
		return err
	}

	if memory != nil {
		viewCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		gameDone := make(chan error, 1)
		go func() {
			_, err := e.Run(viewCtx)
			gameDone <- err
		}()
		if err := render.RunViewer(viewCtx, memory, cfg.Refresh); err != nil {
			return err
		}
		cancel()
		if err := <-gameDone; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		printSummary(stdout, e.Summary())
		return nil
	}

	summary, err := e.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(stdout, summary)

	if web != nil {
		log.Info().Msg("game over, the final board stays available until interrupted")
		return <-serverDone
	}
	return nil
}

func batch(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	summaries, err := experiments.RunBatch(ctx, experiments.Batch{
		Games:   cfg.Games,
		Seed:    cfg.GameSeed(),
		Setup:   cfg.Setup(),
		Records: cfg.Records,
		Format:  cfg.RecordsFormat,
	})
	if err != nil {
		return err
	}
	wins := make(map[string]int)
	for _, s := range summaries {
		wins[s.WinnerName]++
	}
	fmt.Fprintf(stdout, "%d games played\n", len(summaries))
	for i := 0; i < cfg.Players; i++ {
		name := fmt.Sprintf("Player %d", i+1)
		fmt.Fprintf(stdout, "  %-10s %d wins\n", name, wins[name])
	}
	return nil
}

func attach(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	remote := client.NewClientCommunicator(cfg.Attach)
	if cfg.View != config.ViewText {
		return render.RunViewer(ctx, remote, cfg.Refresh)
	}

	ticker := time.NewTicker(cfg.Refresh)
	defer ticker.Stop()
	lastRound := 0
	for {
		if s, ok := remote.Snapshot(); ok && (s.Round != lastRound || s.Terminal) {
			lastRound = s.Round
			fmt.Fprintln(stdout, render.Full(s))
			if s.Terminal {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func publishTo(c communication.Communicator) engine.Observer {
	return func(s game.Snapshot) {
		if err := c.Publish(s); err != nil {
			log.Warn().Err(err).Msg("publish snapshot")
		}
	}
}

// roundDelay pauses the engine once per round so viewers can follow along.
func roundDelay(ctx context.Context, d time.Duration) engine.Observer {
	return func(s game.Snapshot) {
		if s.Phase != engine.Placement.String() {
			return
		}
		select {
		case <-ctx.Done():
		case <-time.After(d):
		}
	}
}

func printSummary(w io.Writer, s engine.Summary) {
	fmt.Fprintf(w, "Game %s finished after %d rounds\n", s.GameID, s.Rounds)
	fmt.Fprintln(w, render.Scores(s.Scores, s.Winner))
	if s.Winner >= 0 {
		fmt.Fprintf(w, "Winner: %s\n", s.WinnerName)
	}
}
