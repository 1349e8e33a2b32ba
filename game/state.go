package game

import (
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog/log"
)

type StateHash uint64

// GameState is the board plus the side to move. It owns its board; Copy
// gives an independent state for speculative play.
type GameState struct {
	Board  Board
	Player Color // Side to move
}

// NewGameState returns the standard starting position with Black to move.
func NewGameState() *GameState {
	return &GameState{
		Board:  NewBoard(),
		Player: Black,
	}
}

func (gs *GameState) Copy() *GameState {
	c := *gs // Board is an array, so this is a deep copy
	return &c
}

// Play applies a legal move in place. Moves that the generator does not
// produce for this position are rejected with ErrInvalidMove and leave the
// state untouched.
func (gs *GameState) Play(move Move) error {
	if len(move) < 2 {
		return fmt.Errorf("%w: %q has fewer than two squares", ErrInvalidMove, move.String())
	}
	for _, legal := range gs.LegalMoves() {
		if legal.Equal(move) {
			gs.Apply(legal)
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not legal for %s", ErrInvalidMove, move, gs.Player)
}

// Apply plays a move taken from LegalMoves for this same position, without
// checking it again. Moves from any other source must go through Play.
func (gs *GameState) Apply(move Move) {
	b := &gs.Board
	from := move.From()
	piece := b.At(from)
	b.Clear(from)

	for _, to := range move[1:] {
		if abs(to.Row-from.Row) > 1 && abs(to.Col-from.Col) > 1 {
			if captured, ok := b.firstOccupiedBetween(from, to); ok {
				log.Trace().Msgf("capture at %s by %s-%s", captured, from, to)
				b.Clear(captured)
			}
		}
		from = to
	}

	b.Set(from, piece.promoted(from.Row))
	gs.Player = gs.Player.Opponent()
}

// Winner reports the winning color once the game is over: a side without
// pieces loses, and so does a side to move without legal moves.
func (gs *GameState) Winner() (Color, bool) {
	if gs.Board.Count(Black) == 0 {
		return White, true
	}
	if gs.Board.Count(White) == 0 {
		return Black, true
	}
	if len(gs.LegalMoves()) == 0 {
		return gs.Player.Opponent(), true
	}
	return Black, false
}

func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	buf := make([]byte, 0, Size*Size+1)
	for row := range gs.Board {
		for _, p := range gs.Board[row] {
			buf = append(buf, byte(p.Symbol()))
		}
	}
	buf = append(buf, byte(gs.Player))
	h.Write(buf)
	return StateHash(h.Sum64())
}

func (gs *GameState) String() string {
	return fmt.Sprintf("%s%s to move\n", gs.Board.String(), gs.Player)
}
