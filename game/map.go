package game

import (
	"fmt"
	"math"

	"halfmoon/utils"
)

// Position is where a node is drawn, in percent of the board (0-100). Only
// the AI's center preference reads it.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Node is a spot on the board that can hold one card.
type Node struct {
	ID          string   `yaml:"id"`
	Position    Position `yaml:"position"`
	Card        *Card    `yaml:"card,omitempty"`
	ConnectedTo []string `yaml:"connectedTo"` // IDs of adjacent nodes
}

// Occupied reports whether a card has been placed on the node.
func (n *Node) Occupied() bool {
	return n.Card != nil
}

// Layout is the board graph for one level.
type Layout struct {
	Level int     `yaml:"level"`
	Name  string  `yaml:"name"`
	Theme string  `yaml:"theme"`
	Nodes []*Node `yaml:"nodes"`
}

// NewLayout creates an empty layout.
func NewLayout(level int, name, theme string) *Layout {
	return &Layout{
		Level: level,
		Name:  name,
		Theme: theme,
	}
}

// AddNode appends a node with no card and no borders.
func (l *Layout) AddNode(id string, x, y float64) *Node {
	node := &Node{ID: id, Position: Position{X: x, Y: y}, ConnectedTo: []string{}}
	l.Nodes = append(l.Nodes, node)
	return node
}

// AddBorder adds a bidirectional edge between two nodes.
func (l *Layout) AddBorder(id1, id2 string) {
	n1, n2 := l.Node(id1), l.Node(id2)
	if n1 == nil || n2 == nil {
		return
	}
	if !contains(n1.ConnectedTo, id2) {
		n1.ConnectedTo = append(n1.ConnectedTo, id2)
	}
	if !contains(n2.ConnectedTo, id1) {
		n2.ConnectedTo = append(n2.ConnectedTo, id1)
	}
}

// Node returns the node with the given ID, or nil.
func (l *Layout) Node(id string) *Node {
	return findNode(l.Nodes, id)
}

func findNode(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func contains(slice []string, item string) bool {
	return utils.FindIndex(slice, item) >= 0
}

// adjacent treats an edge listed on either endpoint as an edge.
func adjacent(a, b *Node) bool {
	return a != b && (contains(a.ConnectedTo, b.ID) || contains(b.ConnectedTo, a.ID))
}

// Neighbors returns the nodes adjacent to id in layout order. Edges listed on
// only one side count both ways; edges to unknown IDs are ignored.
func (l *Layout) Neighbors(id string) []*Node {
	node := l.Node(id)
	if node == nil {
		return nil
	}
	var neighbors []*Node
	for _, n := range l.Nodes {
		if adjacent(node, n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// IsEmpty reports whether no card has been placed yet.
func (l *Layout) IsEmpty() bool {
	for _, n := range l.Nodes {
		if n.Occupied() {
			return false
		}
	}
	return true
}

// IsFull reports whether every node holds a card.
func (l *Layout) IsFull() bool {
	for _, n := range l.Nodes {
		if !n.Occupied() {
			return false
		}
	}
	return true
}

// IsLegal is the placement rule shared by humans and the AI: the node must be
// empty and, unless the board is empty, next to at least one placed card.
func (l *Layout) IsLegal(id string) bool {
	return l.checkPlacement(id, l.IsEmpty()) == nil
}

func (l *Layout) checkPlacement(id string, boardEmpty bool) error {
	node := l.Node(id)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if node.Occupied() {
		return fmt.Errorf("%w: %s", ErrOccupied, id)
	}
	if boardEmpty {
		return nil
	}
	for _, n := range l.Neighbors(id) {
		if n.Occupied() {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalPlacement, id)
}

// LegalPlacements lists the IDs of all legal target nodes in layout order.
func (l *Layout) LegalPlacements() []string {
	boardEmpty := l.IsEmpty()
	var ids []string
	for _, n := range l.Nodes {
		if l.checkPlacement(n.ID, boardEmpty) == nil {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Center is the midpoint of the bounding box of all node positions.
func (l *Layout) Center() Position {
	if len(l.Nodes) == 0 {
		return Position{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range l.Nodes {
		minX = math.Min(minX, n.Position.X)
		maxX = math.Max(maxX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxY = math.Max(maxY, n.Position.Y)
	}
	return Position{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}

// Distance is the Euclidean distance between two positions.
func (p Position) Distance(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Copy returns a deep copy; cards are copied too so ownership changes on the
// copy never leak back.
func (l *Layout) Copy() *Layout {
	nodes := make([]*Node, len(l.Nodes))
	for i, n := range l.Nodes {
		nodes[i] = n.copy()
	}
	return &Layout{
		Level: l.Level,
		Name:  l.Name,
		Theme: l.Theme,
		Nodes: nodes,
	}
}

func (n *Node) copy() *Node {
	connected := make([]string, len(n.ConnectedTo))
	copy(connected, n.ConnectedTo)
	c := &Node{ID: n.ID, Position: n.Position, ConnectedTo: connected}
	if n.Card != nil {
		card := *n.Card
		c.Card = &card
	}
	return c
}

// Validate is the load-time check for layout data. Evaluation tolerates bad
// edges, but a layout that fails here should never reach a game.
func (l *Layout) Validate() error {
	if len(l.Nodes) == 0 {
		return fmt.Errorf("%w: layout %q has no nodes", ErrInvalidLayout, l.Name)
	}
	seen := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: layout %q has a node without an id", ErrInvalidLayout, l.Name)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: layout %q repeats node %s", ErrInvalidLayout, l.Name, n.ID)
		}
		seen[n.ID] = true
	}
	for _, n := range l.Nodes {
		for _, id := range n.ConnectedTo {
			if id == n.ID {
				return fmt.Errorf("%w: node %s is connected to itself", ErrInvalidLayout, n.ID)
			}
			if !seen[id] {
				return fmt.Errorf("%w: node %s is connected to unknown node %s", ErrInvalidLayout, n.ID, id)
			}
		}
	}
	return nil
}
