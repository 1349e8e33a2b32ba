package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"checkers/engine"
	"checkers/game"
	"checkers/searcher"

	"github.com/rs/zerolog/log"
)

var (
	ErrQuit      = errors.New("player quit")
	ErrAmbiguous = errors.New("ambiguous move")
)

// HumanAgent reads moves from a line-oriented input. Entering a single square
// lists the legal destinations of the piece on it; entering origin and
// destination plays the move, with the full path needed only when two capture
// chains share both ends.
type HumanAgent struct {
	in       *bufio.Scanner
	renderer *Renderer
	last     []game.Move
}

func NewHumanAgent(in io.Reader, renderer *Renderer) *HumanAgent {
	return &HumanAgent{
		in:       bufio.NewScanner(in),
		renderer: renderer,
	}
}

// Observe remembers the latest moves so the next frame highlights where they
// landed. It fits engine.Session.OnMove.
func (h *HumanAgent) Observe(record engine.MoveRecord, _ *game.GameState) {
	h.last = append(h.last, record.Move)
	if len(h.last) > 2 {
		h.last = h.last[len(h.last)-2:]
	}
}

func (h *HumanAgent) FindMove(state *game.GameState) (game.Move, searcher.SearchMetric, error) {
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return nil, searcher.SearchMetric{}, engine.ErrNoMove
	}

	view := View{State: state, Highlights: h.lastDestinations()}
	for {
		if err := h.renderer.Render(view); err != nil {
			return nil, searcher.SearchMetric{}, err
		}
		fmt.Fprint(h.renderer.out, "> ")

		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return nil, searcher.SearchMetric{}, err
			}
			return nil, searcher.SearchMetric{}, ErrQuit
		}
		line := strings.TrimSpace(h.in.Text())

		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			return nil, searcher.SearchMetric{}, ErrQuit
		case "?", "moves":
			h.renderer.Println("legal moves: %s", joinMoves(legal))
			continue
		}

		if from, err := game.ParseCoord(line); err == nil {
			destinations := Destinations(legal, from)
			if len(destinations) == 0 {
				h.renderer.Println("no legal moves from %s", from)
			}
			log.Info().Msgf("human selected piece: %s", from)
			view = View{State: state, Highlights: []game.Coord{from}, Destinations: destinations}
			continue
		}

		input, err := game.ParseMove(line)
		if err != nil {
			h.renderer.Println("%v", err)
			continue
		}
		move, err := Resolve(legal, input)
		if err != nil {
			h.renderer.Println("%v", err)
			continue
		}
		log.Info().Msgf("human move chosen: %s", move)
		return move, searcher.SearchMetric{}, nil
	}
}

func (h *HumanAgent) lastDestinations() []game.Coord {
	coords := make([]game.Coord, 0, len(h.last))
	for _, m := range h.last {
		coords = append(coords, m.To())
	}
	return coords
}

// Destinations lists the distinct final squares of the legal moves starting
// at from, in generation order.
func Destinations(legal []game.Move, from game.Coord) []game.Coord {
	seen := map[game.Coord]bool{}
	var destinations []game.Coord
	for _, m := range legal {
		if m.From() == from && !seen[m.To()] {
			seen[m.To()] = true
			destinations = append(destinations, m.To())
		}
	}
	return destinations
}

// Resolve matches user input against the legal moves. A full path must match
// exactly; origin and destination alone are enough when only one legal move
// connects them.
func Resolve(legal []game.Move, input game.Move) (game.Move, error) {
	for _, m := range legal {
		if m.Equal(input) {
			return m, nil
		}
	}
	if len(input) != 2 {
		return nil, fmt.Errorf("%w: %s", game.ErrInvalidMove, input)
	}

	var candidates []game.Move
	for _, m := range legal {
		if m.From() == input.From() && m.To() == input.To() {
			candidates = append(candidates, m)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s", game.ErrInvalidMove, input)
	case 1:
		return candidates[0], nil
	default:
		return nil, fmt.Errorf("%w: enter the full path, one of %s", ErrAmbiguous, joinMoves(candidates))
	}
}

func joinMoves(moves []game.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}
