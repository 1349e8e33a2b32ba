package searcher

import (
	"testing"
	"time"

	"checkers/game"

	"github.com/stretchr/testify/require"
)

func TestMCTSSearch(t *testing.T) {
	t.Run("returns the only legal move once a tiny budget elapses", func(t *testing.T) {
		m := NewMCTS(WithDuration(time.Nanosecond), WithEpisodes(1))

		move, ok := m.FindMove(forcedCapture())

		require.True(t, ok)
		require.Equal(t, game.Move{{Row: 4, Col: 3}, {Row: 6, Col: 5}}, move)
	})

	t.Run("reports no move for a finished game", func(t *testing.T) {
		gs := &game.GameState{Player: game.Black}
		gs.Board.Set(game.Coord{Row: 5, Col: 2}, game.NewMan(game.White))

		move, ok := NewMCTS(WithEpisodes(10)).FindMove(gs)

		require.False(t, ok)
		require.Nil(t, move)
	})

	t.Run("chooses a legal move from the opening", func(t *testing.T) {
		state := game.NewGameState()

		move, ok := NewMCTS(WithEpisodes(100), WithDuration(time.Minute)).FindMove(state)

		require.True(t, ok)
		require.Contains(t, state.LegalMoves(), move)
		require.Equal(t, game.NewGameState(), state, "Search should not mutate the caller's state")
	})

	t.Run("same seed gives the same move", func(t *testing.T) {
		state := game.NewGameState()
		require.NoError(t, state.Play(game.Move{{Row: 2, Col: 1}, {Row: 3, Col: 2}}))

		first, ok1 := NewMCTS(WithSeed(42), WithEpisodes(200), WithDuration(time.Hour)).FindMove(state)
		second, ok2 := NewMCTS(WithSeed(42), WithEpisodes(200), WithDuration(time.Hour)).FindMove(state)

		require.True(t, ok1)
		require.True(t, ok2)
		require.Equal(t, first, second)
	})
}

func TestMCTSBudget(t *testing.T) {
	t.Run("stops after the episode budget", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(50), WithDuration(time.Hour), WithSeed(1), WithMetrics())

		_, ok, metric := m.Search(game.NewGameState())

		require.True(t, ok)
		require.Equal(t, 50, metric.Episodes)
		require.Equal(t, StopEpisodes, metric.StopReason)
		require.Equal(t, 51, metric.Nodes, "Each episode adds one node")
		require.Equal(t, MaxCutoff, metric.Cutoff)
		require.LessOrEqual(t, metric.FullPlayouts, metric.Episodes)
	})

	t.Run("stops after the time budget", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(1<<30), WithDuration(20*time.Millisecond), WithMetrics())

		_, ok, metric := m.Search(game.NewGameState())

		require.True(t, ok)
		require.Equal(t, StopDuration, metric.StopReason)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
		require.Greater(t, metric.Episodes, 0)
	})

	t.Run("ignores non-positive options", func(t *testing.T) {
		m := NewMCTS(WithEpisodes(0), WithDuration(-time.Second), WithCutoff(0))

		require.Equal(t, DefaultEpisodes, m.episodes)
		require.Equal(t, DefaultDuration, m.duration)
		require.Equal(t, MaxCutoff, m.cutoff)
	})

	t.Run("metrics are empty unless requested", func(t *testing.T) {
		_, _, metric := NewMCTS(WithEpisodes(5)).Search(game.NewGameState())

		require.Equal(t, SearchMetric{}, metric)
	})
}

func TestChooseMove(t *testing.T) {
	move, ok := ChooseMove(forcedCapture(), time.Millisecond, 10)

	require.True(t, ok)
	require.Equal(t, game.Move{{Row: 4, Col: 3}, {Row: 6, Col: 5}}, move)

	_, ok = ChooseMove(&game.GameState{Player: game.White}, time.Millisecond, 10)
	require.False(t, ok)
}

func TestChooseMoveWithoutOpponentPieces(t *testing.T) {
	// White is already out of pieces, but Black still has moves to make.
	gs := &game.GameState{Player: game.Black}
	gs.Board.Set(game.Coord{Row: 2, Col: 1}, game.NewMan(game.Black))
	legal := gs.LegalMoves()
	require.Len(t, legal, 2)

	move, ok := ChooseMove(gs, 10*time.Millisecond, 10)

	require.True(t, ok)
	require.Contains(t, legal, move)
}

func TestStopReasonString(t *testing.T) {
	require.Equal(t, "none", StopNone.String())
	require.Equal(t, "duration|episodes", (StopDuration | StopEpisodes).String())
}
