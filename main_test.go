package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("help exits 0", func(t *testing.T) {
		var out, errOut bytes.Buffer
		require.Equal(t, 0, run(context.Background(), []string{"--help"}, &out, &errOut))
		require.Contains(t, out.String(), "--players")
	})

	t.Run("bad configuration exits 1", func(t *testing.T) {
		var out, errOut bytes.Buffer
		require.Equal(t, 1, run(context.Background(), []string{"--players", "0"}, &out, &errOut))
		require.Contains(t, errOut.String(), "configuration error")
	})

	t.Run("unwritable records directory exits 2", func(t *testing.T) {
		var out, errOut bytes.Buffer
		file := filepath.Join(t.TempDir(), "records")
		require.NoError(t, os.WriteFile(file, []byte("not a directory"), 0o600))

		args := []string{"--games", "2", "--records", file, "--log-level", "error"}
		require.Equal(t, 2, run(context.Background(), args, &out, &errOut))
		require.Contains(t, errOut.String(), "failed to create experiment writer")
		require.NotContains(t, out.String(), "games played")
	})

	t.Run("interrupted game exits 0", func(t *testing.T) {
		var out, errOut bytes.Buffer
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.Equal(t, 0, run(ctx, []string{"--seed", "1", "--log-level", "error"}, &out, &errOut))
	})

	t.Run("seeded game prints the summary", func(t *testing.T) {
		var out, errOut bytes.Buffer
		require.Equal(t, 0, run(context.Background(), []string{"--seed", "42", "--log-level", "error"}, &out, &errOut))
		require.Contains(t, out.String(), "finished after 10 rounds")
		require.Contains(t, out.String(), "FINAL SCORES")
		require.Contains(t, out.String(), "Winner: Player")
	})

	t.Run("text view prints every round", func(t *testing.T) {
		var out, errOut bytes.Buffer
		args := []string{"--seed", "42", "--rounds", "2", "-v", "--view", "text", "--log-level", "error"}
		require.Equal(t, 0, run(context.Background(), args, &out, &errOut))
		require.Contains(t, out.String(), "round 1/2")
		require.Contains(t, out.String(), "round 2/2")
		require.Contains(t, out.String(), "game over after 2 rounds")
	})

	t.Run("batch writes records", func(t *testing.T) {
		var out, errOut bytes.Buffer
		dir := t.TempDir()
		args := []string{"--games", "2", "--seed", "1", "--records", dir, "--records-format", "parquet", "--log-level", "error"}
		require.Equal(t, 0, run(context.Background(), args, &out, &errOut))
		require.Contains(t, out.String(), "2 games played")

		runs, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, runs, 1)
	})
}
