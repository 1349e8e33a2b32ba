package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrBadNotation = errors.New("bad notation")
)

// Coord addresses a tile by row and column, both in [0, Size).
type Coord struct {
	Row, Col int
}

func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// IsDark reports whether the tile is one of the playable squares.
func (c Coord) IsDark() bool {
	return (c.Row+c.Col)%2 == 1
}

func (c Coord) step(d direction) Coord {
	return Coord{Row: c.Row + d.dRow, Col: c.Col + d.dCol}
}

// String formats the coordinate as a column letter followed by a 1-based row,
// so (0,1) is "b1".
func (c Coord) String() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

func ParseCoord(s string) (Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: square %q", ErrBadNotation, s)
	}
	c := Coord{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}
	if !c.InBounds() {
		return Coord{}, fmt.Errorf("%w: square %q is off the board", ErrBadNotation, s)
	}
	return c, nil
}

// Move is the origin square followed by every landing square, in order.
// Two entries are a step or a single capture, more entries a capture chain.
type Move []Coord

func (m Move) From() Coord {
	return m[0]
}

func (m Move) To() Coord {
	return m[len(m)-1]
}

func (m Move) Equal(other Move) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

func (m Move) String() string {
	parts := make([]string, len(m))
	for i, c := range m {
		parts[i] = c.String()
	}
	return strings.Join(parts, "-")
}

// ParseMove reads squares separated by '-' or 'x', e.g. "c3-d4" or "c3xe5xg7".
func ParseMove(s string) (Move, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '-' || r == 'x' || r == ' '
	})
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: move %q needs at least two squares", ErrBadNotation, s)
	}
	move := make(Move, len(fields))
	for i, f := range fields {
		c, err := ParseCoord(f)
		if err != nil {
			return nil, err
		}
		move[i] = c
	}
	return move, nil
}

// extend returns a copy of the path with c appended, never sharing the
// backing array with sibling branches.
func (m Move) extend(c Coord) Move {
	return append(m[:len(m):len(m)], c)
}
