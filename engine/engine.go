package engine

const MaxTurns = 500

type Engine interface {
	// Run plays a game till there's a winner or the turn limit is reached
	Run() (Result, error)
}

var _ Engine = (*Session)(nil)
