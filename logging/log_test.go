package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"stoneage/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	t.Run("console honours the level", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Setup(config.LogConfig{Level: "warn"}, &buf))

		log.Info().Msg("hidden")
		log.Warn().Msg("shown")

		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("file receives json lines", func(t *testing.T) {
		var buf bytes.Buffer
		file := filepath.Join(t.TempDir(), "stoneage.log")
		require.NoError(t, Setup(config.LogConfig{Level: "info", File: file, MaxSize: 1}, &buf))

		log.Info().Int("round", 3).Msg("round over")

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		require.Contains(t, string(data), `"round":3`)
		require.Contains(t, string(data), `"message":"round over"`)
		require.Contains(t, buf.String(), "round over")
	})

	t.Run("bad level", func(t *testing.T) {
		require.Error(t, Setup(config.LogConfig{Level: "loud"}, &bytes.Buffer{}))
	})
}
