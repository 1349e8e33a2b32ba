package game

import "fmt"

// Size is the number of rows and columns of the board.
const Size = 8

type Color int8

const (
	Black Color = iota // Moves first, towards increasing rows
	White              // Moves towards decreasing rows
)

func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Forward returns the row delta of a man's forward step.
func (c Color) Forward() int {
	if c == Black {
		return 1
	}
	return -1
}

// PromotionRow returns the farthest row from the color's starting edge.
func (c Color) PromotionRow() int {
	if c == Black {
		return Size - 1
	}
	return 0
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("color(%d)", int8(c))
	}
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	}
	return Black, fmt.Errorf("unknown color %q", s)
}

type Rank int8

const (
	Man Rank = iota
	King
)

// Piece is the claim on a single tile. The zero value is an empty tile.
type Piece struct {
	Occupied bool
	Color    Color
	Rank     Rank
}

func NewMan(c Color) Piece {
	return Piece{Occupied: true, Color: c, Rank: Man}
}

func NewKing(c Color) Piece {
	return Piece{Occupied: true, Color: c, Rank: King}
}

func (p Piece) IsKing() bool {
	return p.Occupied && p.Rank == King
}

// promoted returns the piece as it stands on the given row. Rank only ever
// moves from Man to King.
func (p Piece) promoted(row int) Piece {
	if p.Occupied && row == p.Color.PromotionRow() {
		p.Rank = King
	}
	return p
}

type direction struct {
	dRow, dCol int
}

var kingDirections = []direction{{1, -1}, {1, 1}, {-1, -1}, {-1, 1}}

var manDirections = map[Color][]direction{
	Black: {{1, -1}, {1, 1}},
	White: {{-1, -1}, {-1, 1}},
}

func (p Piece) directions() []direction {
	if p.Rank == King {
		return kingDirections
	}
	return manDirections[p.Color]
}

// Symbol is the single-character rendering of the tile contents.
func (p Piece) Symbol() rune {
	switch {
	case !p.Occupied:
		return '.'
	case p.Color == Black && p.Rank == King:
		return 'B'
	case p.Color == Black:
		return 'b'
	case p.Rank == King:
		return 'W'
	default:
		return 'w'
	}
}
