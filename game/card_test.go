package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

func TestPhase(t *testing.T) {
	t.Run("stepping wraps around the cycle", func(t *testing.T) {
		require.Equal(t, NewMoon, WaningCrescent.Next())
		require.Equal(t, WaningCrescent, NewMoon.Prev())
		require.Equal(t, FirstQuarter, WaningGibbous.Step(5))
		require.Equal(t, WaningGibbous, FirstQuarter.Step(-5))
		require.Equal(t, FirstQuarter, FirstQuarter.Step(3*NumPhases))
	})

	t.Run("opposite phases are four apart", func(t *testing.T) {
		require.Equal(t, FullMoon, NewMoon.Opposite())
		require.Equal(t, LastQuarter, FirstQuarter.Opposite())
		for p := Phase(0); p < NumPhases; p++ {
			require.Equal(t, p, p.Opposite().Opposite())
		}
	})

	t.Run("names", func(t *testing.T) {
		require.Equal(t, "Full Moon", FullMoon.String())
		require.Equal(t, "Phase(9)", Phase(9).String())
		require.False(t, Phase(-1).Valid())
		require.True(t, WaningCrescent.Valid())
	})
}

func TestSide(t *testing.T) {
	require.Equal(t, Opponent, Player.Other())
	require.Equal(t, Player, Opponent.Other())
	require.Equal(t, NoSide, NoSide.Other())

	for _, side := range []Side{NoSide, Player, Opponent} {
		parsed, err := ParseSide(side.String())
		require.NoError(t, err)
		require.Equal(t, side, parsed)
	}
	_, err := ParseSide("spectator")
	require.Error(t, err)

	t.Run("yaml uses names", func(t *testing.T) {
		var card Card
		err := yaml.Unmarshal([]byte("id: x\nphase: 4\nowner: opponent\n"), &card)
		require.NoError(t, err)
		require.Equal(t, Card{ID: "x", Phase: FullMoon, Owner: Opponent}, card)

		out, err := yaml.Marshal(Card{ID: "y", Phase: NewMoon, Owner: Player})
		require.NoError(t, err)
		require.Contains(t, string(out), "owner: player")
	})
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck(30, Opponent, rand.New(rand.NewSource(7)))

	require.Len(t, deck, 30)
	ids := make(map[string]bool)
	for _, card := range deck {
		require.Equal(t, Opponent, card.Owner)
		require.True(t, card.Phase.Valid())
		require.False(t, ids[card.ID], "Card IDs should be unique")
		ids[card.ID] = true
	}

	again := NewDeck(30, Opponent, rand.New(rand.NewSource(7)))
	require.Equal(t, deck, again, "Same seed should deal the same deck")
}
