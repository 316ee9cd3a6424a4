package game

import (
	"testing"

	"halfmoon/meta"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestState(t *testing.T, seed uint64) *GameState {
	t.Helper()
	layout, err := Level(0)
	require.NoError(t, err)
	return NewGameState(layout, rand.New(rand.NewSource(seed)))
}

// theftState has two opponent cards 0-1 on a line with the player to move
// holding a 2.
func theftState() *GameState {
	l := line("a", "b", "c", "d")
	place(l, "a", NewMoon, Opponent)
	place(l, "b", WaxingCrescent, Opponent)
	return &GameState{
		Layout: l,
		Hands: map[Side][]Card{
			Player:   {{ID: "p1", Phase: FirstQuarter, Owner: Player}},
			Opponent: {{ID: "o1", Phase: FullMoon, Owner: Opponent}},
		},
		DrawPiles: map[Side][]Card{
			Player:   {{ID: "p2", Phase: LastQuarter, Owner: Player}},
			Opponent: {},
		},
		Scores: map[Side]int{Player: 0, Opponent: 2},
		Turn:   Player,
	}
}

func TestNewGameState(t *testing.T) {
	gs := newTestState(t, 1)

	require.Equal(t, Player, gs.Turn)
	for _, side := range []Side{Player, Opponent} {
		require.Len(t, gs.Hands[side], meta.HAND_SIZE)
		require.Len(t, gs.DrawPiles[side], meta.DECK_SIZE-meta.HAND_SIZE)
		require.Zero(t, gs.Scores[side])
	}
	count, err := gs.CheckCards()
	require.NoError(t, err)
	require.Equal(t, 2*meta.DECK_SIZE, count)
	require.False(t, gs.IsOver())

	require.Equal(t, gs, newTestState(t, 1), "Same seed should deal the same game")
}

func TestGameStatePlay(t *testing.T) {
	t.Run("placing draws a card and hands the turn over", func(t *testing.T) {
		gs := newTestState(t, 2)
		move := gs.LegalMoves()[0]

		next, _, err := gs.Play(move)

		require.NoError(t, err)
		require.Equal(t, Opponent, next.Turn)
		require.Len(t, next.Hands[Player], meta.HAND_SIZE)
		require.Len(t, next.DrawPiles[Player], meta.DECK_SIZE-meta.HAND_SIZE-1)
		require.Equal(t, move.CardID, next.Layout.Node(move.NodeID).Card.ID)
		require.Equal(t, &move, next.LastMove)
		count, err := next.CheckCards()
		require.NoError(t, err)
		require.Equal(t, 2*meta.DECK_SIZE, count, "Cards are never created or lost")

		require.True(t, gs.Layout.IsEmpty(), "Play should not modify the receiver")
		require.Equal(t, Player, gs.Turn)
	})

	t.Run("completing a chain steals the opponent's cards", func(t *testing.T) {
		gs := theftState()

		next, events, err := gs.Play(Move{CardID: "p1", NodeID: "c"})

		require.NoError(t, err)
		require.Equal(t, []ScoringEvent{
			{Points: 3, Owner: Player, Type: ChainEvent, NodeIDs: []string{"a", "b", "c"}},
		}, events)
		require.Equal(t, 3, next.Scores[Player])
		require.Equal(t, 2, next.Scores[Opponent])
		for _, id := range []string{"a", "b", "c"} {
			require.Equal(t, Player, next.Layout.Node(id).Card.Owner)
		}
		require.Equal(t, []Card{{ID: "p2", Phase: LastQuarter, Owner: Player}}, next.Hands[Player])
		require.Equal(t, Opponent, gs.Layout.Node("a").Card.Owner, "Play should not modify the receiver")
	})

	t.Run("illegal moves", func(t *testing.T) {
		gs := theftState()

		_, _, err := gs.Play(Move{CardID: "o1", NodeID: "c"})
		require.ErrorIs(t, err, ErrCardNotInHand)
		_, _, err = gs.Play(Move{CardID: "p1", NodeID: "a"})
		require.ErrorIs(t, err, ErrOccupied)
		_, _, err = gs.Play(Move{CardID: "p1", NodeID: "d"})
		require.ErrorIs(t, err, ErrIllegalPlacement)
		_, _, err = gs.Play(Move{CardID: "p1", NodeID: "zz"})
		require.ErrorIs(t, err, ErrUnknownNode)
	})

	t.Run("an empty hand ends the game", func(t *testing.T) {
		gs := theftState()
		gs.DrawPiles[Player] = nil

		next, _, err := gs.Play(Move{CardID: "p1", NodeID: "c"})

		require.NoError(t, err)
		require.Empty(t, next.Hands[Player])
		require.True(t, next.IsOver())
		require.Equal(t, Player, next.Winner())

		_, _, err = next.Play(Move{CardID: "o1", NodeID: "d"})
		require.ErrorIs(t, err, ErrGameOver)
	})
}

func TestGameStateEnd(t *testing.T) {
	t.Run("two passes in a row end the game", func(t *testing.T) {
		gs := theftState()

		once := gs.Pass()
		require.Equal(t, Opponent, once.Turn)
		require.False(t, once.IsOver())

		twice := once.Pass()
		require.True(t, twice.IsOver())
		require.Equal(t, Opponent, twice.Winner())
	})

	t.Run("a placement resets the pass count", func(t *testing.T) {
		gs := theftState()
		gs.Passes = 1

		next, _, err := gs.Play(Move{CardID: "p1", NodeID: "c"})
		require.NoError(t, err)
		require.Zero(t, next.Passes)
	})

	t.Run("a full board ends the game", func(t *testing.T) {
		gs := theftState()
		place(gs.Layout, "c", NewMoon, Player)
		place(gs.Layout, "d", NewMoon, Opponent)

		require.True(t, gs.IsOver())
		require.Empty(t, gs.LegalMoves())
	})

	t.Run("a tie has no winner", func(t *testing.T) {
		gs := theftState()
		gs.Scores[Player] = 2

		require.Equal(t, NoSide, gs.Winner())
	})

	t.Run("duplicate cards are reported", func(t *testing.T) {
		gs := theftState()
		gs.Hands[Opponent] = append(gs.Hands[Opponent], gs.Hands[Player][0])

		_, err := gs.CheckCards()
		require.Error(t, err)
	})
}
