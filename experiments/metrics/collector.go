package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// SearchMetric describes one search invocation.
type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
}

// MoveMetric ties a search to its place in a game.
type MoveMetric struct {
	Step int
	Seat int
	SearchMetric
}

// GameMetric describes one finished game.
type GameMetric struct {
	Winner     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector accumulates search statistics across concurrent episodes.
type Collector interface {
	Start(goroutines, cutoff int)
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetric
	Last() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64

	mu   sync.Mutex
	last SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines, cutoff int) {
	c.goroutines = goroutines
	c.cutoff = cutoff
	c.startTime = time.Now()
	c.episodes.Store(0)
	c.fullPlayouts.Store(0)
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) AddFullPlayout() {
	c.fullPlayouts.Add(1)
}

func (c *collector) Complete() SearchMetric {
	metric := SearchMetric{
		Goroutines:   c.goroutines,
		Duration:     time.Since(c.startTime),
		Episodes:     int(c.episodes.Load()),
		Cutoff:       c.cutoff,
		FullPlayouts: int(c.fullPlayouts.Load()),
	}
	c.mu.Lock()
	c.last = metric
	c.mu.Unlock()
	return metric
}

func (c *collector) Last() SearchMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches that do not
// record metrics.
func NewDummyCollector() Collector { return dummyCollector{} }

func (dummyCollector) Start(goroutines, cutoff int) {}
func (dummyCollector) AddEpisode()                  {}
func (dummyCollector) AddFullPlayout()              {}
func (dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
func (dummyCollector) Last() SearchMetric           { return SearchMetric{} }
