package game

import "strings"

// Board is the grid of tile claims. It is a plain array so that assignment
// copies it, which the capture search relies on.
type Board [Size][Size]Piece

// NewBoard returns the starting layout: men on the dark squares of the three
// rows nearest each player's edge.
func NewBoard() Board {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c := Coord{Row: row, Col: col}
			if !c.IsDark() {
				continue
			}
			switch {
			case row < 3:
				b.Set(c, NewMan(Black))
			case row >= Size-3:
				b.Set(c, NewMan(White))
			}
		}
	}
	return b
}

func (b *Board) At(c Coord) Piece {
	return b[c.Row][c.Col]
}

func (b *Board) Set(c Coord, p Piece) {
	b[c.Row][c.Col] = p
}

func (b *Board) Clear(c Coord) {
	b[c.Row][c.Col] = Piece{}
}

// Pieces lists the squares held by the color in row-major order.
func (b *Board) Pieces(color Color) []Coord {
	var coords []Coord
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p := b[row][col]; p.Occupied && p.Color == color {
				coords = append(coords, Coord{Row: row, Col: col})
			}
		}
	}
	return coords
}

func (b *Board) Count(color Color) int {
	count := 0
	for row := range b {
		for _, p := range b[row] {
			if p.Occupied && p.Color == color {
				count++
			}
		}
	}
	return count
}

// firstOccupiedBetween scans the diagonal strictly between from and to.
func (b *Board) firstOccupiedBetween(from, to Coord) (Coord, bool) {
	d := direction{dRow: sign(to.Row - from.Row), dCol: sign(to.Col - from.Col)}
	for c := from.step(d); c != to && c.InBounds(); c = c.step(d) {
		if b.At(c).Occupied {
			return c, true
		}
	}
	return Coord{}, false
}

// String renders the board with row 8 on top, one symbol per tile.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Size - 1; row >= 0; row-- {
		for col := 0; col < Size; col++ {
			sb.WriteRune(b[row][col].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
