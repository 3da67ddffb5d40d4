package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/console"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one console game on stdin/stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "component", "app", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires storage, engine and use case, then plays a session on in/out.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	scoring, err := tictactoe.ParseScoring(conf.Game.Scoring)
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			log.Error("could not close game storage", "error", closeErr)
		}
	}()

	engine := tictactoe.NewEngine(scoring)
	gameUseCase := usecase.NewGameUseCase(logger, gameRepo, engine)
	session := console.NewSession(logger, gameUseCase, console.NewRenderer(!conf.Console.NoColor), in, out)

	log.Debug("Starting session", "scoring", engine.Scoring(), "redis", conf.Redis.Enabled)

	game, err := session.Run(ctx, conf.Game.ResumeID)
	if err != nil {
		if conf.Redis.Enabled && game != nil && !game.IsFinished() {
			fmt.Fprintf(out, "\nGame %s saved, resume with GAME_RESUME_ID=%s\n", game.ID, game.ID)
		}

		return fmt.Errorf("session failed: %w", err)
	}

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryGameRepository(), func() error { return nil }, nil
	}

	redisAddr := conf.Redis.GetRedisAddr()
	if redisAddr == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL), redisStorage.Close, nil
}
