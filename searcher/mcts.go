package searcher

import (
	"time"

	"checkers/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS chooses moves by Monte Carlo tree search. It keeps no tree between
// searches; each search builds a fresh one and discards it.
type MCTS struct {
	duration time.Duration
	episodes int
	cutoff   int
	seed     uint64
	seeded   bool
	metrics  Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithSeed fixes the random source so that searches bounded by episodes are
// reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration: DefaultDuration,
		episodes: DefaultEpisodes,
		cutoff:   MaxCutoff,
		metrics:  NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) FindMove(state *game.GameState) (game.Move, bool) {
	move, ok, _ := m.Search(state)
	return move, ok
}

// Search runs episodes until the time or episode budget is spent, whichever
// comes first, and returns the move of the most visited root child. The
// budget is checked before every episode but the first, so any position with
// a legal move yields one. ok is false when the position has no legal move.
func (m *MCTS) Search(state *game.GameState) (move game.Move, ok bool, metric SearchMetric) {
	t := newTree(state, rand.New(rand.NewSource(m.nextSeed())), m.cutoff)
	m.metrics.Start(m.cutoff)

	if t.nodes[root].fullyExpanded() {
		log.Debug().Str("player", state.Player.String()).Msg("search skipped: no legal moves")
		return nil, false, m.metrics.Complete(len(t.nodes), StopNone)
	}

	log.Debug().
		Str("player", state.Player.String()).
		Dur("duration", m.duration).
		Int("episodes", m.episodes).
		Msg("search started")

	start := time.Now()
	episodes := 0
	reason := StopNone
	for {
		if episodes > 0 {
			if reason = m.exhausted(start, episodes); reason != StopNone {
				break
			}
		}
		fullPlayout := t.episode()
		m.metrics.AddEpisode(fullPlayout)
		episodes++
	}

	move, ok = t.bestMove()
	log.Debug().
		Int("episodes", episodes).
		Int("nodes", len(t.nodes)).
		Stringer("stop", reason).
		Stringer("move", move).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")

	return move, ok, m.metrics.Complete(len(t.nodes), reason)
}

func (m *MCTS) exhausted(start time.Time, episodes int) StopReason {
	reason := StopNone
	if time.Since(start) >= m.duration {
		reason |= StopDuration
	}
	if episodes >= m.episodes {
		reason |= StopEpisodes
	}
	return reason
}

func (m *MCTS) nextSeed() uint64 {
	if m.seeded {
		return m.seed
	}
	return uint64(time.Now().UnixNano())
}
