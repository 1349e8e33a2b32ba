package terminal

import (
	"fmt"
	"io"
	"strings"

	"checkers/engine"
	"checkers/game"

	"github.com/muesli/termenv"
)

const (
	lightTile   = "#EEEEEE"
	darkTile    = "#666666"
	highlighted = "#FF0000"
	destination = "#FFFF00"
	kingMark    = "#FF0000"
)

// View is one frame: the position plus the squares to call out.
type View struct {
	State        *game.GameState
	Highlights   []game.Coord // Selected piece and the last moves' destinations
	Destinations []game.Coord // Legal landings of the selected piece
}

type Renderer struct {
	out *termenv.Output
}

// NewRenderer writes frames to w. The color profile is detected from the
// environment unless given with termenv.WithProfile.
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Board draws the position with row 8 on top and file letters underneath.
// Highlighted pieces are bracketed and destinations starred, so frames stay
// readable without colors.
func (r *Renderer) Board(v View) string {
	highlights := toSet(v.Highlights)
	destinations := toSet(v.Destinations)

	var sb strings.Builder
	for row := game.Size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < game.Size; col++ {
			c := game.Coord{Row: row, Col: col}
			sb.WriteString(r.cell(v.State.Board.At(c), c, highlights[c], destinations[c]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < game.Size; col++ {
		fmt.Fprintf(&sb, " %c ", 'a'+col)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (r *Renderer) cell(p game.Piece, c game.Coord, highlight, dest bool) string {
	bg := lightTile
	if c.IsDark() {
		bg = darkTile
	}
	style := r.out.String(r.text(p, c, highlight, dest)).Background(r.out.Color(bg))

	switch {
	case dest:
		style = style.Foreground(r.out.Color(destination)).Bold()
	case highlight:
		style = style.Foreground(r.out.Color(highlighted)).Bold()
	case p.IsKing():
		style = style.Foreground(r.out.Color(kingMark))
	}
	return style.String()
}

func (r *Renderer) text(p game.Piece, c game.Coord, highlight, dest bool) string {
	switch {
	case dest && !p.Occupied:
		return " * "
	case highlight && p.Occupied:
		return "[" + string(p.Symbol()) + "]"
	case !c.IsDark():
		return "   "
	}
	return " " + string(p.Symbol()) + " "
}

// Render writes the board followed by the side to move.
func (r *Renderer) Render(v View) error {
	_, err := fmt.Fprintf(r.out, "%s%s to move\n", r.Board(v), v.State.Player)
	return err
}

func (r *Renderer) Println(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Announce reports the result from the human's point of view.
func Announce(result engine.Result, human game.Color) string {
	switch {
	case !result.Decided:
		return "DRAW"
	case result.Winner == human:
		return "YOU WON!"
	default:
		return "BOT WON!"
	}
}

func toSet(coords []game.Coord) map[game.Coord]bool {
	set := make(map[game.Coord]bool, len(coords))
	for _, c := range coords {
		set[c] = true
	}
	return set
}
