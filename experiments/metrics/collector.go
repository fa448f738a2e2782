package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

// AgentConfig describes the search settings of one agent in an experiment.
// Zero Iterations and Duration mark a random agent.
type AgentConfig struct {
	ID           int
	Goroutines   int
	Iterations   int
	Duration     time.Duration
	Exploration  float64
	RolloutTurns int
}

func (c AgentConfig) IsRandom() bool {
	return c.Iterations <= 0 && c.Duration <= 0
}

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	RolloutTurns int
	FullPlayouts int
	TreeSize     int
	BestScore    float64
}

type MoveMetric struct {
	Step   int
	Player int
	Move   string
	Scale  int // Scale after the move
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int
	Winner         int // 0 when the turn limit was reached
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	TotalTurns     int
	FinalScale     int
}

type Collector interface {
	Start(goroutines, rolloutTurns int)
	AddFullPlayout()
	AddEpisode()
	AddNodes(n int)
	SetBestScore(score float64)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	rolloutTurns int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
	bestScore    atomic.Uint64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, rolloutTurns int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.rolloutTurns = rolloutTurns
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.bestScore.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int32(n))
}

func (m *collector) SetBestScore(score float64) {
	m.bestScore.Store(math.Float64bits(score))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		RolloutTurns: m.rolloutTurns,
		TreeSize:     int(m.nodes.Load()),
		BestScore:    math.Float64frombits(m.bestScore.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, rolloutTurns int) {}
func (m *dummyCollector) AddFullPlayout()                    {}
func (m *dummyCollector) AddEpisode()                        {}
func (m *dummyCollector) AddNodes(n int)                     {}
func (m *dummyCollector) SetBestScore(score float64)         {}
func (m *dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
