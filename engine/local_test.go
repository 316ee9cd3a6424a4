package engine

import (
	"testing"

	"halfmoon/experiments/metrics"
	"halfmoon/game"
	"halfmoon/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// mockAgent replays a fixed decision every turn.
type mockAgent struct {
	move game.Move
	ok   bool
	hits int
}

func (a *mockAgent) FindMove(state *game.GameState) (game.Move, bool, metrics.SearchMetric) {
	a.hits++
	return a.move, a.ok, metrics.SearchMetric{}
}

func TestLocalRun(t *testing.T) {
	t.Run("selectors play a level to the end", func(t *testing.T) {
		for i, layout := range game.Levels() {
			player := searcher.NewSelector(searcher.Strategic, searcher.WithSeed(1), searcher.WithMetrics())
			opponent := searcher.NewSelector(searcher.TierForLevel(i), searcher.WithSeed(2), searcher.WithMetrics())
			e := LocalEngine(layout, player, opponent, rand.New(rand.NewSource(3)))

			winner, gameMetric, moveMetrics := e.Run()

			final := e.session.State()
			require.True(t, final.IsOver())
			require.True(t, final.Layout.IsFull())
			require.Equal(t, final.Winner(), winner)
			require.Equal(t, winner.String(), gameMetric.Winner)
			require.Equal(t, len(layout.Nodes), gameMetric.TotalMoves)
			require.Len(t, moveMetrics, len(layout.Nodes))
			require.Equal(t, i+1, gameMetric.Level)
			require.Equal(t, "player", gameMetric.StartingPlayer)
			require.Equal(t, final.Scores[game.Player], gameMetric.PlayerScore)
			require.Equal(t, final.Scores[game.Opponent], gameMetric.OpponentScore)

			total := 0
			for j, mm := range moveMetrics {
				require.Equal(t, j+1, mm.Step)
				require.False(t, mm.Passed)
				require.NotEmpty(t, mm.Move)
				require.True(t, mm.Random || mm.Candidates > 0, "step %d was neither random nor scored", mm.Step)
				total += mm.Points
			}
			require.Equal(t, gameMetric.PlayerScore+gameMetric.OpponentScore, total,
				"Every point is earned by the side that moved")

			count, err := final.CheckCards()
			require.NoError(t, err)
			require.Equal(t, 60, count, "Cards are never created or lost")
		}
	})

	t.Run("illegal moves fall back to the first legal move", func(t *testing.T) {
		layout, err := game.Level(0)
		require.NoError(t, err)
		cheat := &mockAgent{move: game.Move{CardID: "forged", NodeID: "1"}, ok: true}
		lazy := &mockAgent{}
		e := LocalEngine(layout, cheat, lazy, rand.New(rand.NewSource(1)))

		_, gameMetric, moveMetrics := e.Run()

		require.True(t, e.session.State().Layout.IsFull())
		require.Equal(t, len(layout.Nodes), gameMetric.TotalMoves)
		require.Equal(t, 3, cheat.hits)
		require.Equal(t, 3, lazy.hits)
		for _, mm := range moveMetrics {
			require.False(t, mm.Passed, "Nobody may pass while a node is open")
		}
	})

	t.Run("an engine needs two agents", func(t *testing.T) {
		layout, err := game.Level(0)
		require.NoError(t, err)

		require.Panics(t, func() {
			LocalEngine(layout, &mockAgent{}, nil, rand.New(rand.NewSource(1)))
		})
	})

	t.Run("an invalid layout is refused", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(game.NewLayout(1, "empty", ""), &mockAgent{}, &mockAgent{}, rand.New(rand.NewSource(1)))
		})
	})
}
