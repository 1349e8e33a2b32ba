package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"checkers/config"
	"checkers/engine"
	"checkers/experiments"
	"checkers/game"
	"checkers/searcher"
	"checkers/terminal"

	"github.com/rs/zerolog/log"
)

const usage = `usage: checkers <command> [flags]

commands:
  play      play against the search bot in the terminal
  selfplay  run search configurations against each other and store CSV records`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "selfplay":
		err = runSelfPlay(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, terminal.ErrQuit) {
		log.Fatal().Err(err).Msg(os.Args[1] + " failed")
	}
}

// loadConfig parses the shared flags and returns the config file with flag
// overrides applied.
func loadConfig(fs *flag.FlagSet, args []string, extra func(*config.Config)) (config.Config, error) {
	path := fs.String("config", "", "YAML config file")
	level := fs.String("log", "", "Log level (overrides config)")
	duration := fs.Duration("duration", 0, "Search time per move (overrides config)")
	episodes := fs.Int("episodes", 0, "Search episodes per move (overrides config)")
	seed := fs.Uint64("seed", 0, "Search seed, 0 seeds from the clock (overrides config)")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return cfg, err
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if *duration > 0 {
		cfg.Search.Duration = *duration
	}
	if *episodes > 0 {
		cfg.Search.Episodes = *episodes
	}
	if *seed > 0 {
		cfg.Search.Seed = *seed
	}
	if extra != nil {
		extra(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, config.SetupLogger(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	human := fs.String("human", "", "Color played from the terminal: white or black (overrides config)")
	cfg, err := loadConfig(fs, args, func(cfg *config.Config) {
		if *human != "" {
			cfg.Human = *human
		}
	})
	if err != nil {
		return err
	}

	humanColor, err := game.ParseColor(cfg.Human)
	if err != nil {
		return err
	}

	renderer := terminal.NewRenderer(os.Stdout)
	player := terminal.NewHumanAgent(os.Stdin, renderer)
	bot := engine.NewMCTSAgent(searcher.NewMCTS(cfg.Search.Options()...))

	black, white := engine.Agent(player), bot
	if humanColor == game.White {
		black, white = bot, player
	}

	session := engine.NewSession(black, white).OnMove(func(record engine.MoveRecord, state *game.GameState) {
		player.Observe(record, state)
		if record.Player != humanColor {
			renderer.Println("bot played %s", record.Move)
		}
	})

	start := time.Now()
	result, err := session.Run()
	if err != nil {
		return err
	}

	if err := renderer.Render(terminal.View{State: session.State}); err != nil {
		log.Warn().Err(err).Msg("failed to draw the final position")
	}
	renderer.Println("%s after %d turns (%s)", terminal.Announce(result, humanColor), result.Turns, time.Since(start).Round(time.Second))
	return nil
}

func runSelfPlay(args []string) error {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := fs.Int("games", 0, "Games per match up (overrides config)")
	out := fs.String("out", "", "Output directory for CSV records (overrides config)")
	name := fs.String("name", "selfplay", "Experiment name")
	cfg, err := loadConfig(fs, args, func(cfg *config.Config) {
		if *games > 0 {
			cfg.SelfPlay.Games = *games
		}
		if *out != "" {
			cfg.SelfPlay.Out = *out
		}
	})
	if err != nil {
		return err
	}

	summary, err := experiments.Run(experiments.Experiment{
		Name:     *name,
		Games:    cfg.SelfPlay.Games,
		MaxTurns: cfg.SelfPlay.MaxTurns,
		Seed:     cfg.Search.Seed,
		Configs:  cfg.SelfPlay.Agents,
	}, cfg.SelfPlay.Out)
	if err != nil {
		return err
	}

	log.Info().
		Int("games", summary.Games).
		Int("draws", summary.Draws).
		Interface("wins", summary.Wins).
		Str("dir", summary.Dir).
		Msg("self-play finished")
	return nil
}
