package searcher

import (
	"halfmoon/experiments/metrics"
	"halfmoon/game"
)

// simulation evaluates hypothetical placements on a scratch copy of the
// board. The scratch node is emptied again after every evaluation, so the
// copy always matches the real board between calls.
type simulation struct {
	state   *game.GameState // read only
	scratch *game.Layout
	center  game.Position
	metrics metrics.Collector
}

// outcome summarizes the events a placement would trigger for its placer.
type outcome struct {
	points    int
	steals    int // Chains through cards of the other side
	ownChains int // Chains through own cards only
	pairs     int // PAIR and FULL_MOON events
}

func newSimulation(state *game.GameState, collector metrics.Collector) *simulation {
	return &simulation{
		state:   state,
		scratch: state.Layout.Copy(),
		center:  state.Layout.Center(),
		metrics: collector,
	}
}

func (sim *simulation) play(nodeID string, card game.Card, placer game.Side) outcome {
	node := sim.scratch.Node(nodeID)
	card.Owner = placer
	node.Card = &card
	events, err := game.Evaluate(sim.scratch.Nodes, nodeID)
	node.Card = nil
	sim.metrics.AddEvaluation()
	if err != nil {
		// nodeID comes from LegalPlacements and was just filled
		panic(err)
	}

	var o outcome
	for _, event := range events {
		if event.Owner != placer {
			continue
		}
		o.points += event.Points
		if event.Type == game.ChainEvent {
			if sim.ownedBy(event.NodeIDs, placer.Other()) {
				o.steals++
			} else {
				o.ownChains++
			}
		} else {
			o.pairs++
		}
	}
	return o
}

// ownedBy reports whether any of ids currently holds a card owned by side.
func (sim *simulation) ownedBy(ids []string, side game.Side) bool {
	for _, id := range ids {
		node := sim.state.Layout.Node(id)
		if node != nil && node.Occupied() && node.Card.Owner == side {
			return true
		}
	}
	return false
}

func (sim *simulation) ownNeighbors(nodeID string, side game.Side) int {
	count := 0
	for _, n := range sim.state.Layout.Neighbors(nodeID) {
		if n.Occupied() && n.Card.Owner == side {
			count++
		}
	}
	return count
}

func (sim *simulation) position(nodeID string) game.Position {
	return sim.state.Layout.Node(nodeID).Position
}
