package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	modePlayerVsPlayer = "1"
	modePlayerVsAI     = "2"
)

var ErrInputClosed = errors.New("input closed")

type inputLine struct {
	text string
	err  error
}

type gameUseCase interface {
	NewGame(ctx context.Context, vsComputer bool) (*entity.Game, error)
	ResumeGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ComputerTurn(ctx context.Context, gameID string) (*entity.Game, entity.Move, error)
}

// Session runs one game at the terminal: it asks for the mode, collects moves
// and re-prompts on bad input until the game ends.
type Session struct {
	logger   *slog.Logger
	useCase  gameUseCase
	renderer *Renderer

	in  *bufio.Scanner
	out io.Writer

	lines     chan inputLine
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewSession(logger *slog.Logger, useCase gameUseCase, renderer *Renderer, in io.Reader, out io.Writer) *Session {
	return &Session{
		logger:   logger.With("component", "console"),
		useCase:  useCase,
		renderer: renderer,
		in:       bufio.NewScanner(in),
		out:      out,
		lines:    make(chan inputLine),
		done:     make(chan struct{}),
	}
}

// Run - plays a game to the end. A non-empty resumeID continues a stored game
// instead of asking for a mode. Cancelling ctx interrupts a pending prompt.
func (that *Session) Run(ctx context.Context, resumeID string) (*entity.Game, error) {
	that.startOnce.Do(func() { go that.readInput() })
	defer that.stopOnce.Do(func() { close(that.done) })

	game, err := that.start(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	that.renderer.Title(that.out, game.VsComputer)

	for !game.IsFinished() {
		if err = ctx.Err(); err != nil {
			return game, fmt.Errorf("session interrupted: %w", err)
		}

		that.renderer.Board(that.out, game.Snapshot())

		if game.IsComputerTurn() {
			var move entity.Move
			game, move, err = that.useCase.ComputerTurn(ctx, game.ID)
			if err != nil {
				return nil, fmt.Errorf("computer turn failed: %w", err)
			}

			fmt.Fprintf(that.out, "\n\t Computer [O] plays %d\n", move.Cell())
			continue
		}

		game, err = that.humanTurn(ctx, game)
		if err != nil {
			return game, err
		}
	}

	that.renderer.Board(that.out, game.Snapshot())
	that.renderer.Outcome(that.out, game)

	return game, nil
}

func (that *Session) start(ctx context.Context, resumeID string) (*entity.Game, error) {
	if resumeID != "" {
		game, err := that.useCase.ResumeGame(ctx, resumeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resume game: %w", err)
		}

		return game, nil
	}

	vsComputer, err := that.selectMode(ctx)
	if err != nil {
		return nil, err
	}

	game, err := that.useCase.NewGame(ctx, vsComputer)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return game, nil
}

func (that *Session) selectMode(ctx context.Context) (bool, error) {
	for {
		fmt.Fprint(that.out, "\nSelect Mode: \n1. Player vs Player\n2. Player vs AI\nChoice: ")

		line, err := that.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch line {
		case modePlayerVsPlayer:
			return false, nil
		case modePlayerVsAI:
			return true, nil
		default:
			fmt.Fprintln(that.out, "Invalid mode. Try again.")
		}
	}
}

// humanTurn - loops until the player enters a legal cell.
func (that *Session) humanTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	for {
		fmt.Fprintf(that.out, "\n\t %s turn: ", playerName(game.Turn, game.VsComputer))

		line, err := that.readLine(ctx)
		if err != nil {
			return game, err
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(that.out, "Invalid move. Try again.")
			continue
		}

		next, err := that.useCase.MakeTurn(ctx, game.ID, cell)
		if isInvalidMove(err) {
			that.logger.Debug("invalid move", "gameID", game.ID, "cell", cell, "error", err)
			fmt.Fprintln(that.out, "Invalid move. Try again.")
			continue
		}

		if err != nil {
			return game, fmt.Errorf("failed to make turn: %w", err)
		}

		return next, nil
	}
}

// readInput - feeds stdin lines to readLine until the input ends or the session stops.
// Scan blocks, so it runs on its own goroutine.
func (that *Session) readInput() {
	defer close(that.lines)

	for that.in.Scan() {
		select {
		case that.lines <- inputLine{text: strings.TrimSpace(that.in.Text())}:
		case <-that.done:
			return
		}
	}

	if err := that.in.Err(); err != nil {
		select {
		case that.lines <- inputLine{err: err}:
		case <-that.done:
		}
	}
}

func (that *Session) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("input interrupted: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("input interrupted: %w", ctx.Err())
	case line, ok := <-that.lines:
		if !ok {
			return "", ErrInputClosed
		}

		if line.err != nil {
			return "", fmt.Errorf("failed to read input: %w", line.err)
		}

		return line.text, nil
	}
}

func isInvalidMove(err error) bool {
	return errors.Is(err, apperror.ErrCellOutOfRange) || errors.Is(err, apperror.ErrCellOccupied)
}
