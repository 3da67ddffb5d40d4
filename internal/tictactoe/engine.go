package tictactoe

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -10
)

var ErrUnknownScoring = errors.New("unknown scoring")

// Scoring - how a won board is scored during search.
type Scoring string

const (
	// ScoringRaw returns ±10 at any depth, so a slow win is as good as a fast one.
	ScoringRaw Scoring = "raw"
	// ScoringDepth subtracts the search depth, preferring faster wins and slower losses.
	// It deliberately departs from the classic flat ±10 scoring (ScoringRaw) so that an
	// immediate win is taken over a blocking move that only wins later.
	ScoringDepth Scoring = "depth"
)

func ParseScoring(value string) (Scoring, error) {
	switch Scoring(value) {
	case ScoringRaw, ScoringDepth:
		return Scoring(value), nil
	case "":
		return ScoringDepth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScoring, value)
	}
}

// Evaluate - scores a board from the computer's (O) point of view.
func Evaluate(board *entity.Board) int {
	switch board.Winner() {
	case entity.MarkO:
		return WinScore
	case entity.MarkX:
		return LossScore
	default:
		return 0
	}
}

func IsMovesLeft(board *entity.Board) bool {
	return board.IsMovesLeft()
}

func IsTerminal(board *entity.Board) entity.State {
	return board.Terminal()
}

// Engine picks moves for O with an exhaustive minimax search.
type Engine struct {
	scoring Scoring
}

func NewEngine(scoring Scoring) *Engine {
	return &Engine{scoring: scoring}
}

func (that *Engine) Scoring() Scoring {
	return that.scoring
}

// Minimax - returns the value of the board for O with the given side to move.
// Cells are placed and cleared in place; the board is unchanged on return.
func (that *Engine) Minimax(board *entity.Board, depth int, maximizing bool) int {
	if score := Evaluate(board); score != 0 {
		return that.weigh(score, depth)
	}

	if !board.IsMovesLeft() {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, move := range board.EmptyCells() {
			board.Set(move, entity.MarkO)
			best = max(best, that.Minimax(board, depth+1, false))
			board.Set(move, entity.MarkEmpty)
		}

		return best
	}

	best := math.MaxInt
	for _, move := range board.EmptyCells() {
		board.Set(move, entity.MarkX)
		best = min(best, that.Minimax(board, depth+1, true))
		board.Set(move, entity.MarkEmpty)
	}

	return best
}

func (that *Engine) weigh(score, depth int) int {
	if that.scoring != ScoringDepth {
		return score
	}

	if score > 0 {
		return score - depth
	}

	return score + depth
}

// FindBestMove - returns the highest scoring cell for O, earliest in row-major order on ties.
// ok is false when the board has no empty cell.
func (that *Engine) FindBestMove(board *entity.Board) (entity.Move, bool) {
	var bestMove entity.Move
	bestScore := math.MinInt
	found := false

	for _, move := range board.EmptyCells() {
		board.Set(move, entity.MarkO)
		score := that.Minimax(board, 0, false)
		board.Set(move, entity.MarkEmpty)

		if score > bestScore {
			bestMove, bestScore, found = move, score, true
		}
	}

	return bestMove, found
}

// BestMove - searches and plays O's move on the game, passing the turn to X.
func (that *Engine) BestMove(game *entity.Game) (entity.Move, error) {
	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	if game.Turn != entity.MarkO {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	move, ok := that.FindBestMove(&game.Board)
	if !ok {
		return entity.Move{}, apperror.ErrNoMovesLeft
	}

	if err := game.ApplyMove(move, entity.MarkO); err != nil {
		return entity.Move{}, fmt.Errorf("failed to apply best move: %w", err)
	}

	return move, nil
}
