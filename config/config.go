// Package config reads the command line, an optional YAML file and
// STONEAGE_* environment variables into one validated Config.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stoneage/game"
	"stoneage/meta"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrConfiguration is game.ErrConfiguration; every validation error wraps it.
var ErrConfiguration = game.ErrConfiguration

const (
	ViewWeb  = "web"
	ViewText = "text"
	ViewTUI  = "tui"

	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

type LogConfig struct {
	Level      string
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type Config struct {
	Players       int
	Seed          uint64
	SeedSet       bool
	Rounds        int
	Workers       int
	Visualize     bool
	View          string
	Addr          string
	Refresh       time.Duration
	RoundDelay    time.Duration
	Attach        string
	Games         int
	Records       string
	RecordsFormat string
	ConfigFile    string
	Log           LogConfig
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("stoneage", pflag.ContinueOnError)
	fs.IntP("players", "p", meta.DEFAULT_PLAYERS, "number of AI players")
	fs.Uint64("seed", 0, "seed for dice and deck shuffles (default: time based)")
	fs.Int("rounds", meta.MAX_ROUNDS, "number of rounds")
	fs.Int("workers", meta.STARTING_WORKERS, "starting workers per player")
	fs.BoolP("visualize", "v", false, "show the game while it runs")
	fs.String("view", ViewWeb, "visualization: web, text or tui")
	fs.String("addr", meta.VIEW_ADDR, "listen address of the web view")
	fs.Duration("refresh", meta.REFRESH_SECONDS*time.Second, "viewer refresh interval")
	fs.Duration("round-delay", 0, "pause after every round while visualizing")
	fs.String("attach", "", "only watch the web view at this URL in the console")
	fs.Int("games", meta.EXPERIMENT_GAMES, "number of games to run")
	fs.String("records", "", "directory for game and round records")
	fs.String("records-format", FormatCSV, "record format: csv or parquet")
	fs.String("log-level", "info", "log level")
	fs.String("log-file", "", "also log to this rolling file")
	fs.StringP("config", "c", "", "YAML config file")
	return fs
}

// Load parses args (without the program name). pflag.ErrHelp is returned
// unwrapped when help was requested.
func Load(args []string) (Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	v := viper.New()
	v.SetEnvPrefix("STONEAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("log.max-size", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age", 28)
	v.SetDefault("log.compress", false)
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := v.BindPFlag("log.level", fs.Lookup("log-level")); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := v.BindPFlag("log.file", fs.Lookup("log-file")); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", ErrConfiguration, file, err)
		}
	}

	cfg := Config{
		Players:       v.GetInt("players"),
		Seed:          v.GetUint64("seed"),
		SeedSet:       v.IsSet("seed"),
		Rounds:        v.GetInt("rounds"),
		Workers:       v.GetInt("workers"),
		Visualize:     v.GetBool("visualize"),
		View:          strings.ToLower(v.GetString("view")),
		Addr:          v.GetString("addr"),
		Refresh:       v.GetDuration("refresh"),
		RoundDelay:    v.GetDuration("round-delay"),
		Attach:        v.GetString("attach"),
		Games:         v.GetInt("games"),
		Records:       v.GetString("records"),
		RecordsFormat: strings.ToLower(v.GetString("records-format")),
		ConfigFile:    v.GetString("config"),
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSize:    v.GetInt("log.max-size"),
			MaxBackups: v.GetInt("log.max-backups"),
			MaxAge:     v.GetInt("log.max-age"),
			Compress:   v.GetBool("log.compress"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no game can run with.
func (c Config) Validate() error {
	switch {
	case c.Players < 1 || c.Players > meta.MAX_PLAYERS:
		return fmt.Errorf("%w: players must be between 1 and %d, got %d", ErrConfiguration, meta.MAX_PLAYERS, c.Players)
	case c.Rounds < 1:
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrConfiguration, c.Rounds)
	case c.Workers < 1 || c.Workers > game.StandardMaxWorkers:
		return fmt.Errorf("%w: workers must be between 1 and %d, got %d", ErrConfiguration, game.StandardMaxWorkers, c.Workers)
	case c.View != ViewWeb && c.View != ViewText && c.View != ViewTUI:
		return fmt.Errorf("%w: unknown view %q", ErrConfiguration, c.View)
	case c.Refresh <= 0:
		return fmt.Errorf("%w: refresh must be positive, got %s", ErrConfiguration, c.Refresh)
	case c.RoundDelay < 0:
		return fmt.Errorf("%w: round delay cannot be negative", ErrConfiguration)
	case c.Games < 1:
		return fmt.Errorf("%w: games must be positive, got %d", ErrConfiguration, c.Games)
	case c.RecordsFormat != FormatCSV && c.RecordsFormat != FormatParquet:
		return fmt.Errorf("%w: unknown records format %q", ErrConfiguration, c.RecordsFormat)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// GameSeed is the configured seed, or a time based one when none was given.
func (c Config) GameSeed() uint64 {
	if c.SeedSet {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Setup turns the config into game parameters.
func (c Config) Setup() game.Setup {
	setup := game.DefaultSetup()
	setup.Players = c.Players
	setup.MaxRounds = c.Rounds
	setup.StartingWorkers = c.Workers
	return setup
}

// Usage returns the flag help text.
func Usage() string {
	return newFlagSet().FlagUsages()
}
