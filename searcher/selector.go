package searcher

import (
	"math"
	"time"

	"halfmoon/experiments/metrics"
	"halfmoon/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Selector)

// Selector picks placements for the side to move. It owns its random source
// and is meant for one caller at a time.
type Selector struct {
	tier    Tier
	tuning  Tuning
	rng     *rand.Rand
	metrics metrics.Collector
}

func WithTuning(tuning Tuning) Option {
	return func(s *Selector) {
		s.tuning = tuning
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(s *Selector) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSelector(tier Tier, options ...Option) *Selector {
	s := &Selector{ // Default values
		tier:    tier,
		tuning:  DefaultTuning,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Selector) Tier() Tier {
	return s.tier
}

// SelectMove picks a move for state.Turn at the given tier with default
// tuning. It returns false when the side has to pass.
func SelectMove(state *game.GameState, tier Tier) (game.Move, bool) {
	return NewSelector(tier).SelectMove(state)
}

func (s *Selector) SelectMove(state *game.GameState) (game.Move, bool) {
	move, ok, _ := s.FindMove(state)
	return move, ok
}

// FindMove scores every legal node x hand card and returns the best one
// along with search metrics. It returns false when the hand is empty or no
// node is legal. state is not modified.
func (s *Selector) FindMove(state *game.GameState) (game.Move, bool, metrics.SearchMetric) {
	s.metrics.Start(int(s.tier))

	actor := state.Turn
	hand := state.Hands[actor]
	nodes := state.Layout.LegalPlacements()
	if len(hand) == 0 || len(nodes) == 0 {
		return game.Move{}, false, s.metrics.Complete(0)
	}

	// Novice sometimes plays without looking
	if s.tier == Novice && s.rng.Float64() < s.tuning.RandomMoveChance {
		s.metrics.SetRandom(true)
		move := game.Move{
			CardID: hand[s.rng.Intn(len(hand))].ID,
			NodeID: nodes[s.rng.Intn(len(nodes))],
		}
		return move, true, s.metrics.Complete(0)
	}

	sim := newSimulation(state, s.metrics)
	var best game.Move
	bestScore := math.Inf(-1)
	for _, nodeID := range nodes {
		counter := 0.0
		if s.tier >= Adversarial {
			counter = s.counterScore(sim, nodeID, actor.Other())
		}
		for _, card := range hand {
			s.metrics.AddCandidate()
			score := s.score(sim, nodeID, card, actor) + s.tuning.CounterWeight*counter
			score += s.rng.Float64() * s.tuning.Jitter
			if score > bestScore {
				bestScore = score
				best = game.Move{CardID: card.ID, NodeID: nodeID}
			}
		}
	}

	log.Debug().
		Str("tier", s.tier.String()).
		Str("side", actor.String()).
		Str("move", best.String()).
		Float64("score", bestScore).
		Msg("selected move")
	return best, true, s.metrics.Complete(bestScore)
}

// score rates placing card on nodeID for actor, without the lookahead term.
func (s *Selector) score(sim *simulation, nodeID string, card game.Card, actor game.Side) float64 {
	o := sim.play(nodeID, card, actor)

	if s.tier == Novice {
		if o.points > 0 {
			return float64(o.points)
		}
		return s.rng.Float64() * s.tuning.NoviceTieBreak
	}

	score := float64(o.points)
	if o.steals > 0 {
		score += s.tuning.StealBonus
	}
	if o.ownChains > 0 {
		score += s.tuning.OwnChainBonus
	}
	score += float64(o.pairs) * s.tuning.PairBonus

	dist := sim.position(nodeID).Distance(sim.center)
	score += math.Max(0, (s.tuning.CenterRadius-dist)/s.tuning.CenterScale)
	score += float64(sim.ownNeighbors(nodeID, actor)) * s.tuning.ClusterBonus
	return score
}

// counterScore is the best the replier's current hand could score by taking
// nodeID itself on the present board.
func (s *Selector) counterScore(sim *simulation, nodeID string, replier game.Side) float64 {
	best := 0.0
	for _, card := range sim.state.Hands[replier] {
		o := sim.play(nodeID, card, replier)
		potential := float64(o.points)
		if o.steals > 0 {
			potential += s.tuning.CounterStealBonus
		}
		best = math.Max(best, potential)
	}
	return best
}
