package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Search struct {
	Duration time.Duration `yaml:"duration"`
	Episodes int           `yaml:"episodes"`
	Cutoff   int           `yaml:"cutoff"`
	Seed     uint64        `yaml:"seed"` // 0 seeds from the clock
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type SelfPlay struct {
	Games    int                   `yaml:"games"`
	MaxTurns int                   `yaml:"max_turns"`
	Out      string                `yaml:"out"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
}

type Config struct {
	Search   Search   `yaml:"search"`
	Human    string   `yaml:"human"` // Color played from the terminal
	Log      Log      `yaml:"log"`
	SelfPlay SelfPlay `yaml:"selfplay"`
}

func Default() Config {
	return Config{
		Search: Search{
			Duration: searcher.DefaultDuration,
			Episodes: searcher.DefaultEpisodes,
			Cutoff:   searcher.MaxCutoff,
		},
		Human: game.White.String(),
		Log: Log{
			Level:  zerolog.InfoLevel.String(),
			Pretty: true,
		},
		SelfPlay: SelfPlay{
			Games:    10,
			MaxTurns: 300,
			Out:      "experiments",
			Agents: []metrics.AgentConfig{
				{ID: 0, Kind: "random"},
				{ID: 1, Kind: "mcts", Duration: 100 * time.Millisecond, Episodes: 200, Cutoff: searcher.MaxCutoff},
			},
		},
	}
}

// Load reads a YAML config on top of the defaults. An empty path yields the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := game.ParseColor(c.Human); err != nil {
		return fmt.Errorf("human: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Search.Duration < 0 || c.Search.Episodes < 0 || c.Search.Cutoff < 0 {
		return fmt.Errorf("search budgets must not be negative: %+v", c.Search)
	}
	return nil
}

// Options turns the search section into searcher options. Zero values keep
// the searcher defaults.
func (s Search) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithDuration(s.Duration),
		searcher.WithEpisodes(s.Episodes),
		searcher.WithCutoff(s.Cutoff),
	}
	if s.Seed != 0 {
		options = append(options, searcher.WithSeed(s.Seed))
	}
	return options
}

// SetupLogger installs the global zerolog logger on w.
func SetupLogger(w io.Writer, level string, pretty bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
