package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var (
	styleX     = color.New(color.FgRed, color.OpBold)
	styleO     = color.New(color.FgBlue, color.OpBold)
	styleTitle = color.New(color.FgGreen)
)

// Renderer draws boards and banners; empty cells show their 1-9 index.
type Renderer struct {
	colored bool
}

func NewRenderer(colored bool) *Renderer {
	return &Renderer{colored: colored}
}

func (that *Renderer) Title(w io.Writer, vsComputer bool) {
	fmt.Fprintln(w, that.paint(styleTitle, "\n     T i c k   C r o s s   G a m e"))
	fmt.Fprintf(w, "\t%s \n\t%s\n\n", playerName(entity.MarkX, vsComputer), playerName(entity.MarkO, vsComputer))
}

func (that *Renderer) Board(w io.Writer, board entity.Board) {
	for i, row := range board {
		fmt.Fprint(w, "\t\t      |      |     \n")
		fmt.Fprintf(w, "\t\t  %s   |  %s   |  %s  \n",
			that.cell(row[0], entity.Move{Row: i, Col: 0}),
			that.cell(row[1], entity.Move{Row: i, Col: 1}),
			that.cell(row[2], entity.Move{Row: i, Col: 2}),
		)

		if i < entity.BoardSize-1 {
			fmt.Fprint(w, "\t\t______|______|______\n")
		} else {
			fmt.Fprint(w, "\t\t      |      |      \n")
		}
	}
}

func (that *Renderer) Outcome(w io.Writer, game *entity.Game) {
	switch game.State {
	case entity.StateXWins:
		fmt.Fprintf(w, "\n%s Wins! Congratulations!\n", playerName(entity.MarkX, game.VsComputer))
	case entity.StateOWins:
		fmt.Fprintf(w, "\n%s Wins! Congratulations!\n", playerName(entity.MarkO, game.VsComputer))
	case entity.StateDraw:
		fmt.Fprintln(w, "\nIt's a draw")
	}
}

func (that *Renderer) cell(mark entity.Mark, move entity.Move) string {
	switch mark {
	case entity.MarkX:
		return that.paint(styleX, string(mark))
	case entity.MarkO:
		return that.paint(styleO, string(mark))
	default:
		return strconv.Itoa(move.Cell())
	}
}

func (that *Renderer) paint(style color.Style, text string) string {
	if !that.colored {
		return text
	}

	return style.Render(text)
}

func playerName(mark entity.Mark, vsComputer bool) string {
	if mark == entity.MarkX {
		return "Player1 [X]"
	}

	if vsComputer {
		return "Computer [O]"
	}

	return "Player2 [O]"
}
