package searcher

import (
	"strings"
	"time"
)

type StopReason int

const (
	StopNone     StopReason = 0
	StopDuration StopReason = 1 // Time budget ran out
	StopEpisodes StopReason = 2 // Episode budget ran out
)

func (r StopReason) String() string {
	var reasons []string
	if r&StopDuration != 0 {
		reasons = append(reasons, "duration")
	}
	if r&StopEpisodes != 0 {
		reasons = append(reasons, "episodes")
	}
	if len(reasons) == 0 {
		return "none"
	}
	return strings.Join(reasons, "|")
}

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // Rollouts that ended with a winner before the cutoff
	Cutoff       int
	Nodes        int
	StopReason   StopReason
}

type Collector interface {
	Start(cutoff int)
	AddEpisode(fullPlayout bool)
	Complete(nodes int, reason StopReason) SearchMetric
}

type collector struct {
	cutoff       int
	startTime    time.Time
	episodes     int
	fullPlayouts int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes = 0
	m.fullPlayouts = 0
}

func (m *collector) AddEpisode(fullPlayout bool) {
	m.episodes++
	if fullPlayout {
		m.fullPlayouts++
	}
}

func (m *collector) Complete(nodes int, reason StopReason) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
		Cutoff:       m.cutoff,
		Nodes:        nodes,
		StopReason:   reason,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int)                                    {}
func (m *dummyCollector) AddEpisode(fullPlayout bool)                         {}
func (m *dummyCollector) Complete(nodes int, reason StopReason) SearchMetric { return SearchMetric{} }
