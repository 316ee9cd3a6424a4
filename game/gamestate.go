package game

import (
	"fmt"

	"halfmoon/meta"
	"halfmoon/utils"

	"golang.org/x/exp/rand"
)

// GameState is everything that changes during a level: the board, both hands
// and draw piles, the scores and whose turn it is. Play and Pass leave the
// receiver untouched and return the next state.
type GameState struct {
	Layout    *Layout
	Hands     map[Side][]Card
	DrawPiles map[Side][]Card
	Scores    map[Side]int
	Turn      Side
	LastMove  *Move
	Passes    int // Consecutive passes, two end the game
}

// NewGameState deals a fresh deck to each side on an empty copy of layout.
// The player moves first.
func NewGameState(layout *Layout, rng *rand.Rand) *GameState {
	gs := &GameState{
		Layout:    layout.Copy(),
		Hands:     make(map[Side][]Card, 2),
		DrawPiles: make(map[Side][]Card, 2),
		Scores:    map[Side]int{Player: 0, Opponent: 0},
		Turn:      Player,
	}
	for _, side := range []Side{Player, Opponent} {
		deck := NewDeck(meta.DECK_SIZE, side, rng)
		hand := min(meta.HAND_SIZE, len(deck))
		gs.Hands[side] = deck[:hand:hand]
		gs.DrawPiles[side] = deck[hand:]
	}
	return gs
}

func (gs GameState) Copy() *GameState {
	var lastMove *Move
	if gs.LastMove != nil {
		m := *gs.LastMove
		lastMove = &m
	}
	scores := make(map[Side]int, len(gs.Scores))
	for side, score := range gs.Scores {
		scores[side] = score
	}
	return &GameState{
		Layout:    gs.Layout.Copy(),
		Hands:     copyCards(gs.Hands),
		DrawPiles: copyCards(gs.DrawPiles),
		Scores:    scores,
		Turn:      gs.Turn,
		LastMove:  lastMove,
		Passes:    gs.Passes,
	}
}

func copyCards(bySide map[Side][]Card) map[Side][]Card {
	out := make(map[Side][]Card, len(bySide))
	for side, cards := range bySide {
		c := make([]Card, len(cards))
		copy(c, cards)
		out[side] = c
	}
	return out
}

// LegalMoves returns every card x node combination open to the side to move.
func (gs GameState) LegalMoves() []Move {
	var moves []Move
	for _, nodeID := range gs.Layout.LegalPlacements() {
		for _, card := range gs.Hands[gs.Turn] {
			moves = append(moves, Move{CardID: card.ID, NodeID: nodeID})
		}
	}
	return moves
}

// Play places a card from the hand of the side to move. The returned state
// has the chain ownership transfer applied, the points added, one card drawn
// and the turn handed over.
func (gs GameState) Play(move Move) (*GameState, []ScoringEvent, error) {
	if gs.IsOver() {
		return nil, nil, ErrGameOver
	}
	side := gs.Turn
	idx := utils.FindIndexFunc(gs.Hands[side], func(c Card) bool { return c.ID == move.CardID })
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: %s holds no card %s", ErrCardNotInHand, side, move.CardID)
	}
	if err := gs.Layout.checkPlacement(move.NodeID, gs.Layout.IsEmpty()); err != nil {
		return nil, nil, err
	}

	newGs := gs.Copy()
	card := newGs.Hands[side][idx]
	card.Owner = side
	newGs.Layout.Node(move.NodeID).Card = &card

	events, err := Evaluate(newGs.Layout.Nodes, move.NodeID)
	if err != nil {
		// The node was just filled, so this is a programming error
		panic(err)
	}
	ApplyEvents(newGs.Layout.Nodes, events, side)
	for owner, points := range Tally(events) {
		newGs.Scores[owner] += points
	}

	newGs.Hands[side] = append(newGs.Hands[side][:idx], newGs.Hands[side][idx+1:]...)
	newGs.draw(side)

	newGs.Turn = side.Other()
	newGs.LastMove = &move
	newGs.Passes = 0
	return newGs, events, nil
}

// Pass hands the turn to the other side without placing.
func (gs GameState) Pass() *GameState {
	newGs := gs.Copy()
	newGs.Turn = gs.Turn.Other()
	newGs.LastMove = nil
	newGs.Passes++
	return newGs
}

// draw moves the top card of side's draw pile into its hand.
func (gs *GameState) draw(side Side) bool {
	pile := gs.DrawPiles[side]
	if len(pile) == 0 {
		return false
	}
	gs.Hands[side] = append(gs.Hands[side], pile[0])
	gs.DrawPiles[side] = pile[1:]
	return true
}

// IsOver reports whether the level has ended: the board is full, a hand has
// run out, or both sides passed in a row.
func (gs GameState) IsOver() bool {
	return gs.Layout.IsFull() ||
		len(gs.Hands[Player]) == 0 ||
		len(gs.Hands[Opponent]) == 0 ||
		gs.Passes >= 2
}

// Winner is the side with the strictly higher score, NoSide on a tie.
func (gs GameState) Winner() Side {
	switch {
	case gs.Scores[Player] > gs.Scores[Opponent]:
		return Player
	case gs.Scores[Opponent] > gs.Scores[Player]:
		return Opponent
	default:
		return NoSide
	}
}

// CheckCards verifies that no card ID appears twice across hands, draw piles
// and the board, and returns the number of cards seen.
func (gs GameState) CheckCards() (int, error) {
	seen := make(map[string]string)
	record := func(id, where string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("card %s is in both %s and %s", id, prev, where)
		}
		seen[id] = where
		return nil
	}
	for _, side := range []Side{Player, Opponent} {
		for _, c := range gs.Hands[side] {
			if err := record(c.ID, side.String()+" hand"); err != nil {
				return 0, err
			}
		}
		for _, c := range gs.DrawPiles[side] {
			if err := record(c.ID, side.String()+" draw pile"); err != nil {
				return 0, err
			}
		}
	}
	for _, n := range gs.Layout.Nodes {
		if n.Occupied() {
			if err := record(n.Card.ID, "node "+n.ID); err != nil {
				return 0, err
			}
		}
	}
	return len(seen), nil
}
