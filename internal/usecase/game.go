package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type GameUseCase interface {
	NewGame(ctx context.Context, vsComputer bool) (*entity.Game, error)
	ResumeGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ComputerTurn(ctx context.Context, gameID string) (*entity.Game, entity.Move, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type bot interface {
	BestMove(game *entity.Game) (entity.Move, error)
}

type gameUseCase struct {
	logger *slog.Logger

	gameRepo gameRepo
	bot      bot
}

func NewGameUseCase(logger *slog.Logger, gameRepo gameRepo, bot bot) GameUseCase {
	return &gameUseCase{
		logger:   logger.With("component", "usecase"),
		gameRepo: gameRepo,
		bot:      bot,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context, vsComputer bool) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), vsComputer)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save new game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "vsComputer", vsComputer)

	return game, nil
}

func (that *gameUseCase) ResumeGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsFinished() {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameFinished, gameID)
	}

	that.logger.Info("game resumed", "gameID", game.ID, "moves", len(game.Moves))

	return game, nil
}

// MakeTurn - plays a human move given as a 1-9 cell for whoever's turn it is.
// On an invalid move the unchanged game is returned alongside the error.
func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsComputerTurn() {
		return game, apperror.ErrNotYourTurn
	}

	move, err := entity.MoveFromCell(cell)
	if err != nil {
		return game, err
	}

	mark := game.Turn
	if err = game.ApplyMove(move, mark); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	that.logger.Debug("turn made", "gameID", game.ID, "mark", mark, "cell", cell)

	return that.save(ctx, game)
}

// ComputerTurn - lets the search engine play O.
func (that *gameUseCase) ComputerTurn(ctx context.Context, gameID string) (*entity.Game, entity.Move, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, entity.Move{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.IsComputerTurn() {
		return game, entity.Move{}, apperror.ErrNotYourTurn
	}

	move, err := that.bot.BestMove(game)
	if err != nil {
		return game, entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("computer turn made", "gameID", game.ID, "cell", move.Cell())

	game, err = that.save(ctx, game)
	if err != nil {
		return nil, entity.Move{}, err
	}

	return game, move, nil
}

// save - stores an ongoing game and removes a finished one.
func (that *gameUseCase) save(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	if game.IsFinished() {
		that.cleanupGame(ctx, game)
		return game, nil
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) cleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "cleanupGame", "gameID", game.ID)

	log.Info("game finished", "state", game.State, "moves", len(game.Moves))

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}
}
