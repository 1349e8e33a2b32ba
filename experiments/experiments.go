package experiments

import (
	"fmt"

	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"github.com/rs/zerolog/log"
)

const (
	KindMCTS   = "mcts"
	KindRandom = "random"
)

type Experiment struct {
	Name     string
	Games    int // Per match up
	MaxTurns int
	Seed     uint64
	Configs  []metrics.AgentConfig
}

type Summary struct {
	Dir   string
	Games int
	Draws int
	Wins  map[int]int // Keyed by AgentConfig.ID
}

// MatchUps pairs the first config, the baseline, against every other config.
// A single config plays against itself.
func MatchUps(configs []metrics.AgentConfig) [][2]metrics.AgentConfig {
	if len(configs) == 0 {
		return nil
	}
	baseline := configs[0]
	if len(configs) == 1 {
		return [][2]metrics.AgentConfig{{baseline, baseline}}
	}
	matchUps := make([][2]metrics.AgentConfig, 0, len(configs)-1)
	for _, config := range configs[1:] {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return matchUps
}

// Run plays every match up exp.Games times, alternating colors between games,
// and stores the configs, game and move records as CSV under dir.
func Run(exp Experiment, dir string) (Summary, error) {
	for _, config := range exp.Configs {
		if err := validate(config); err != nil {
			return Summary{}, err
		}
	}

	matchUps := MatchUps(exp.Configs)
	summary := Summary{Wins: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < exp.Games; i++ {
			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}

			id := len(gameRecords) + 1
			seed := exp.Seed + uint64(2*id)
			result, err := runGame(black, white, seed, exp.MaxTurns)
			if err != nil {
				return summary, fmt.Errorf("game %d: %w", id, err)
			}

			record := metrics.GameRecord{
				ID:        id,
				Black:     black.ID,
				White:     white.ID,
				Winner:    "draw",
				Turns:     result.Turns,
				StartTime: result.StartTime,
				EndTime:   result.EndTime,
			}
			summary.Games++
			if result.Decided {
				record.Winner = result.Winner.String()
				if result.Winner == game.Black {
					summary.Wins[black.ID]++
				} else {
					summary.Wins[white.ID]++
				}
			} else {
				summary.Draws++
			}
			gameRecords = append(gameRecords, record)

			for _, mr := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:         id,
					Step:         mr.Step,
					Player:       mr.Player.String(),
					Move:         mr.Move.String(),
					Duration:     mr.Metric.Duration,
					Episodes:     mr.Metric.Episodes,
					FullPlayouts: mr.Metric.FullPlayouts,
					Nodes:        mr.Metric.Nodes,
					StopReason:   mr.Metric.StopReason.String(),
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, record.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	writer, err := metrics.NewWriter(dir, exp.Name)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.BaseDir

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return summary, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	log.Info().Str("dir", writer.BaseDir).Msg("stored experiment records")

	return summary, nil
}

func runGame(black, white metrics.AgentConfig, seed uint64, maxTurns int) (engine.Result, error) {
	session := engine.NewSession(NewAgent(black, seed), NewAgent(white, seed+1)).WithMaxTurns(maxTurns)
	return session.Run()
}

// NewAgent builds the agent described by config. Search agents always
// collect metrics so move records carry them.
func NewAgent(config metrics.AgentConfig, seed uint64) engine.Agent {
	if config.Kind == KindRandom {
		return engine.NewRandomAgent(seed)
	}
	return engine.NewMCTSAgent(searcher.NewMCTS(
		searcher.WithDuration(config.Duration),
		searcher.WithEpisodes(config.Episodes),
		searcher.WithCutoff(config.Cutoff),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	))
}

func validate(config metrics.AgentConfig) error {
	switch config.Kind {
	case KindMCTS, KindRandom, "":
		return nil
	default:
		return fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}
}
