package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalPlacements(t *testing.T) {
	t.Run("every node is legal on an empty board", func(t *testing.T) {
		l := Grid(2, 2)

		require.Equal(t, []string{"r0c0", "r0c1", "r1c0", "r1c1"}, l.LegalPlacements())
	})

	t.Run("only empty neighbors of placed cards are legal", func(t *testing.T) {
		l := Grid(3, 3)
		place(l, "r1c1", NewMoon, Player)

		require.Equal(t, []string{"r0c1", "r1c0", "r1c2", "r2c1"}, l.LegalPlacements())
		require.False(t, l.IsLegal("r1c1"), "Occupied node")
		require.False(t, l.IsLegal("r0c0"), "Diagonal is not adjacent")
		require.False(t, l.IsLegal("missing"))
	})

	t.Run("one-sided edges make both ends adjacent", func(t *testing.T) {
		l := NewLayout(1, "one-sided", "test")
		l.AddNode("a", 0, 0)
		b := l.AddNode("b", 0, 0)
		b.ConnectedTo = []string{"a"}
		place(l, "b", NewMoon, Player)

		require.True(t, l.IsLegal("a"))
	})

	t.Run("placement errors", func(t *testing.T) {
		l := Grid(1, 3)
		place(l, "r0c0", NewMoon, Player)

		require.ErrorIs(t, l.checkPlacement("r0c0", false), ErrOccupied)
		require.ErrorIs(t, l.checkPlacement("r0c2", false), ErrIllegalPlacement)
		require.ErrorIs(t, l.checkPlacement("zz", false), ErrUnknownNode)
		require.NoError(t, l.checkPlacement("r0c1", false))
	})

	t.Run("full board has no legal node", func(t *testing.T) {
		l := Grid(2, 2)
		for _, n := range l.Nodes {
			place(l, n.ID, NewMoon, Player)
		}

		require.True(t, l.IsFull())
		require.Empty(t, l.LegalPlacements())
	})
}

func TestLayout(t *testing.T) {
	t.Run("center is the middle of the bounding box", func(t *testing.T) {
		l := NewLayout(1, "box", "test")
		l.AddNode("a", 10, 20)
		l.AddNode("b", 90, 40)
		l.AddNode("c", 30, 80)

		require.Equal(t, Position{X: 50, Y: 50}, l.Center())
		require.InDelta(t, 5.0, Position{X: 3, Y: 4}.Distance(Position{}), 1e-9)
	})

	t.Run("copy is deep", func(t *testing.T) {
		l := Grid(2, 2)
		place(l, "r0c0", NewMoon, Opponent)

		c := l.Copy()
		c.Node("r0c0").Card.Owner = Player
		c.Node("r0c1").ConnectedTo = nil
		place(c, "r1c1", FullMoon, Player)

		require.Equal(t, Opponent, l.Node("r0c0").Card.Owner)
		require.NotEmpty(t, l.Node("r0c1").ConnectedTo)
		require.False(t, l.Node("r1c1").Occupied())
	})

	t.Run("neighbors are in layout order", func(t *testing.T) {
		l := Grid(3, 3)

		var ids []string
		for _, n := range l.Neighbors("r1c1") {
			ids = append(ids, n.ID)
		}
		require.Equal(t, []string{"r0c1", "r1c0", "r1c2", "r2c1"}, ids)
		require.Nil(t, l.Neighbors("missing"))
	})

	t.Run("validate rejects bad data", func(t *testing.T) {
		require.ErrorIs(t, NewLayout(1, "empty", "").Validate(), ErrInvalidLayout)

		dup := NewLayout(1, "dup", "")
		dup.AddNode("a", 0, 0)
		dup.AddNode("a", 0, 0)
		require.ErrorIs(t, dup.Validate(), ErrInvalidLayout)

		ghost := NewLayout(1, "ghost", "")
		ghost.AddNode("a", 0, 0).ConnectedTo = []string{"b"}
		err := ghost.Validate()
		require.ErrorIs(t, err, ErrInvalidLayout)
		require.True(t, strings.Contains(err.Error(), "unknown node b"))

		self := NewLayout(1, "self", "")
		self.AddNode("a", 0, 0).ConnectedTo = []string{"a"}
		require.ErrorIs(t, self.Validate(), ErrInvalidLayout)

		require.NoError(t, Grid(4, 4).Validate())
	})
}
