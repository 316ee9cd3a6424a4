package metrics

import (
	"time"
)

type SearchMetric struct {
	Tier        int
	Duration    time.Duration
	Candidates  int  // Card x node combinations scored
	Evaluations int  // Calls into the scoring evaluator
	Random      bool // The move was picked at random without scoring
	BestScore   float64
}

type MoveMetric struct {
	Step   int
	Player string // Side to move
	Move   string
	Passed bool
	Points int // Points earned by the mover
	SearchMetric
}

type GameMetric struct {
	Level          int
	StartingPlayer string
	Winner         string // Empty on a tie
	PlayerScore    int
	OpponentScore  int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(tier int)
	SetRandom(value bool)
	AddCandidate()
	AddEvaluation()
	Complete(bestScore float64) SearchMetric
}

// collector is used by one selector at a time, so plain counters suffice.
type collector struct {
	tier        int
	startTime   time.Time
	candidates  int
	evaluations int
	random      bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(tier int) {
	*m = collector{tier: tier, startTime: time.Now()}
}

func (m *collector) SetRandom(value bool) {
	m.random = value
}

func (m *collector) AddCandidate() {
	m.candidates++
}

func (m *collector) AddEvaluation() {
	m.evaluations++
}

func (m *collector) Complete(bestScore float64) SearchMetric {
	return SearchMetric{
		Tier:        m.tier,
		Duration:    time.Since(m.startTime),
		Candidates:  m.candidates,
		Evaluations: m.evaluations,
		Random:      m.random,
		BestScore:   bestScore,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(tier int)                          {}
func (m *dummyCollector) SetRandom(value bool)                    {}
func (m *dummyCollector) AddCandidate()                           {}
func (m *dummyCollector) AddEvaluation()                          {}
func (m *dummyCollector) Complete(bestScore float64) SearchMetric { return SearchMetric{} }
