package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel: "debug",
		Game:     config.Game{Scoring: "depth"},
		Console:  config.Console{NoColor: true},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays a full game with in-memory storage", func(t *testing.T) {
		var out bytes.Buffer

		err := Run(ctx, discardLogger(), testConfig(), strings.NewReader("1\n1\n4\n2\n5\n3\n"), &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Player1 [X] Wins!")
	})

	t.Run("Raw scoring plays against the computer", func(t *testing.T) {
		var out bytes.Buffer
		conf := testConfig()
		conf.Game.Scoring = "raw"

		err := Run(ctx, discardLogger(), conf, strings.NewReader("2\n5\n1\n2\n3\n4\n6\n7\n8\n9\n"), &out)

		require.NoError(t, err)
		assert.NotContains(t, out.String(), "Player1 [X] Wins!")
	})

	t.Run("Unknown scoring", func(t *testing.T) {
		conf := testConfig()
		conf.Game.Scoring = "greedy"

		err := Run(ctx, discardLogger(), conf, strings.NewReader(""), io.Discard)

		assert.ErrorIs(t, err, tictactoe.ErrUnknownScoring)
	})

	t.Run("Redis without an address", func(t *testing.T) {
		conf := testConfig()
		conf.Redis = config.Redis{Enabled: true}

		err := Run(ctx, discardLogger(), conf, strings.NewReader(""), io.Discard)

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Closed input is reported", func(t *testing.T) {
		err := Run(ctx, discardLogger(), testConfig(), strings.NewReader("1\n5\n"), io.Discard)

		assert.ErrorIs(t, err, console.ErrInputClosed)
	})
}
