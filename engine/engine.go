package engine

import (
	"halfmoon/experiments/metrics"
	"halfmoon/game"
)

type Engine interface {
	// Run plays a level until it is over or the turn cap is reached
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Agent picks moves for one side. *searcher.Selector is an Agent.
type Agent interface {
	// FindMove returns false when the agent passes
	FindMove(state *game.GameState) (game.Move, bool, metrics.SearchMetric)
}
