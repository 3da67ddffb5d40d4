package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const BoardSize = 3

type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// Opponent - returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

type State string

const (
	StateOngoing State = "ongoing"
	StateXWins   State = "x_wins"
	StateOWins   State = "o_wins"
	StateDraw    State = "draw"
)

// WinLines - every line that wins the game, in scan order: rows, columns, diagonals.
var WinLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveFromCell - converts a 1-9 row-major cell index into a move.
func MoveFromCell(cell int) (Move, error) {
	if cell < 1 || cell > BoardSize*BoardSize {
		return Move{}, fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	return Move{Row: (cell - 1) / BoardSize, Col: (cell - 1) % BoardSize}, nil
}

// Cell - returns the 1-9 row-major index of the move.
func (that Move) Cell() int {
	return that.Row*BoardSize + that.Col + 1
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

type Board [BoardSize][BoardSize]Mark

func (that *Board) At(move Move) Mark {
	return that[move.Row][move.Col]
}

func (that *Board) Set(move Move, mark Mark) {
	that[move.Row][move.Col] = mark
}

// Winner - returns the mark of the first completed line, or MarkEmpty.
func (that *Board) Winner() Mark {
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != MarkEmpty && a == b && b == c {
			return a
		}
	}

	return MarkEmpty
}

func (that *Board) IsMovesLeft() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == MarkEmpty {
				return true
			}
		}
	}

	return false
}

// Terminal - reports whether the board ends the game and how.
func (that *Board) Terminal() State {
	switch that.Winner() {
	case MarkX:
		return StateXWins
	case MarkO:
		return StateOWins
	}

	if !that.IsMovesLeft() {
		return StateDraw
	}

	return StateOngoing
}

func (that *Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

// EmptyCells - returns the free cells in row-major order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)
	for i, row := range that {
		for j, cell := range row {
			if cell == MarkEmpty {
				cells = append(cells, Move{Row: i, Col: j})
			}
		}
	}

	return cells
}

type Game struct {
	ID         string `json:"id"`
	Board      Board  `json:"board"`
	Turn       Mark   `json:"turn"`
	State      State  `json:"state"`
	VsComputer bool   `json:"vs_computer"`
	Moves      []Move `json:"moves,omitempty"`
}

func NewGame(id string, vsComputer bool) *Game {
	return &Game{
		ID:         id,
		Turn:       MarkX,
		State:      StateOngoing,
		VsComputer: vsComputer,
	}
}

func (that *Game) IsFinished() bool {
	return that.State != StateOngoing
}

// IsComputerTurn - true when the computer opponent should pick the next move.
func (that *Game) IsComputerTurn() bool {
	return that.VsComputer && !that.IsFinished() && that.Turn == MarkO
}

// Snapshot - returns a copy of the board for rendering.
func (that *Game) Snapshot() Board {
	return that.Board
}

// LastMove - returns the most recently accepted move.
func (that *Game) LastMove() (Move, bool) {
	if len(that.Moves) == 0 {
		return Move{}, false
	}

	return that.Moves[len(that.Moves)-1], true
}

func (that *Game) ValidateMove(move Move) error {
	if !move.InRange() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOutOfRange, move.Row, move.Col)
	}

	if that.Board.At(move) != MarkEmpty {
		return apperror.ErrCellOccupied
	}

	return nil
}

func (that *Game) IsValidMove(move Move) bool {
	return that.ValidateMove(move) == nil
}

// ApplyMove - places the mark and passes the turn; the game is untouched on error.
func (that *Game) ApplyMove(move Move, mark Mark) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.ValidateMove(move); err != nil {
		return err
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	that.Board.Set(move, mark)
	that.Moves = append(that.Moves, move)
	that.Turn = mark.Opponent()
	that.State = that.Board.Terminal()

	return nil
}
