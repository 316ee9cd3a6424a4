package game

import "fmt"

// EventType names the rule that produced a scoring event.
type EventType string

const (
	PairEvent     EventType = "PAIR"
	FullMoonEvent EventType = "FULL_MOON"
	ChainEvent    EventType = "CHAIN"
)

const (
	PairPoints     = 1
	FullMoonPoints = 2
	MinChainLength = 3
)

// maxExpansions bounds each direction of the chain search.
const maxExpansions = 1 << 12

// ScoringEvent is one award produced by a placement. NodeIDs are in board
// order: [placed, neighbor] for pairs, the chain path for chains.
type ScoringEvent struct {
	Points  int
	Owner   Side
	Type    EventType
	NodeIDs []string
}

func (e ScoringEvent) String() string {
	return fmt.Sprintf("%s+%d(%s %v)", e.Type, e.Points, e.Owner, e.NodeIDs)
}

// Evaluate returns every scoring event triggered by the card just placed on
// placedID. It reads nodes and never modifies them; applying ownership
// changes is left to ApplyEvents.
func Evaluate(nodes []*Node, placedID string) ([]ScoringEvent, error) {
	placed := findNode(nodes, placedID)
	if placed == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, placedID)
	}
	if !placed.Occupied() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyNode, placedID)
	}

	g := newGraph(nodes)
	var events []ScoringEvent
	events = append(events, g.pairs(placed)...)
	events = append(events, g.fullMoons(placed)...)
	if chain, ok := g.chain(placed); ok {
		events = append(events, chain)
	}
	return events, nil
}

// graph is the occupied part of the board with symmetric adjacency.
type graph struct {
	adj    map[string][]*Node
	budget int
}

func newGraph(nodes []*Node) *graph {
	g := &graph{
		adj:    make(map[string][]*Node),
		budget: maxExpansions,
	}
	occupied := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Occupied() {
			occupied = append(occupied, n)
		}
	}
	for _, a := range occupied {
		for _, b := range occupied {
			if adjacent(a, b) {
				g.adj[a.ID] = append(g.adj[a.ID], b)
			}
		}
	}
	return g
}

func (g *graph) pairs(placed *Node) []ScoringEvent {
	var events []ScoringEvent
	for _, neighbor := range g.adj[placed.ID] {
		if neighbor.Card.Phase == placed.Card.Phase {
			events = append(events, pairEvent(PairEvent, PairPoints, placed, neighbor))
		}
	}
	return events
}

func (g *graph) fullMoons(placed *Node) []ScoringEvent {
	var events []ScoringEvent
	for _, neighbor := range g.adj[placed.ID] {
		if neighbor.Card.Phase == placed.Card.Phase.Opposite() {
			events = append(events, pairEvent(FullMoonEvent, FullMoonPoints, placed, neighbor))
		}
	}
	return events
}

func pairEvent(t EventType, points int, placed, neighbor *Node) ScoringEvent {
	return ScoringEvent{
		Points:  points,
		Owner:   placed.Card.Owner,
		Type:    t,
		NodeIDs: []string{placed.ID, neighbor.ID},
	}
}

// chain joins the longest ascending run leaving the placed node with the
// longest descending run leaving it. A descending run walks the same edges
// as an ascending one read backwards, so one joined path covers both orders.
func (g *graph) chain(placed *Node) (ScoringEvent, bool) {
	ascending := g.longestRun(placed, 1, make(map[string]bool))

	// The descending half may not reuse ascending nodes. This only matters
	// once a chain wraps the whole cycle.
	visited := make(map[string]bool, len(ascending))
	for _, n := range ascending[1:] {
		visited[n.ID] = true
	}
	g.budget = maxExpansions
	descending := g.longestRun(placed, -1, visited)

	path := make([]string, 0, len(descending)+len(ascending)-1)
	for i := len(descending) - 1; i >= 0; i-- {
		path = append(path, descending[i].ID)
	}
	for _, n := range ascending[1:] {
		path = append(path, n.ID)
	}

	if len(path) < MinChainLength {
		return ScoringEvent{}, false
	}
	return ScoringEvent{
		Points:  len(path),
		Owner:   placed.Card.Owner,
		Type:    ChainEvent,
		NodeIDs: path,
	}, true
}

// longestRun performs a depth-first search from current along edges whose
// card phase moves by step, returning the longest path found (current first).
// visited holds the current path only: entries are removed on the way back so
// sibling branches may pass through the same node.
func (g *graph) longestRun(current *Node, step int, visited map[string]bool) []*Node {
	longest := []*Node{current}
	if g.budget <= 0 {
		return longest
	}
	g.budget--

	visited[current.ID] = true
	defer delete(visited, current.ID)

	want := current.Card.Phase.Step(step)
	for _, next := range g.adj[current.ID] {
		if visited[next.ID] || next.Card.Phase != want {
			continue
		}
		sub := g.longestRun(next, step, visited)
		// Strictly longer only, so the first path found wins ties
		if len(sub)+1 > len(longest) {
			longest = append([]*Node{current}, sub...)
		}
	}
	return longest
}

// ApplyEvents carries out the ownership transfer of chain events: every card
// on a chain completed by placer becomes placer's. Pairs never change owners.
// It returns the number of cards that changed hands.
func ApplyEvents(nodes []*Node, events []ScoringEvent, placer Side) int {
	flipped := 0
	for _, event := range events {
		if event.Type != ChainEvent || event.Owner != placer {
			continue
		}
		for _, id := range event.NodeIDs {
			node := findNode(nodes, id)
			if node == nil || !node.Occupied() {
				continue
			}
			if node.Card.Owner != placer {
				node.Card.Owner = placer
				flipped++
			}
		}
	}
	return flipped
}

// Tally sums event points per side.
func Tally(events []ScoringEvent) map[Side]int {
	points := make(map[Side]int)
	for _, event := range events {
		points[event.Owner] += event.Points
	}
	return points
}
