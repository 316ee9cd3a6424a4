package gamemaster

import (
	"errors"
	"fmt"

	"halfmoon/game"

	"golang.org/x/exp/rand"
)

// ErrMustPlay is returned when a side tries to pass while it has a legal move.
var ErrMustPlay = errors.New("a legal move is available")

// Update is published after every placement or pass, in play order.
type Update struct {
	Side   game.Side
	Move   game.Move
	Passed bool
	Events []game.ScoringEvent
	State  *game.GameState // State after the update
}

// UpdateGetter returns the next unread update, or false if there is none yet
// or the game is over and every update has been read.
type UpdateGetter func() (Update, bool)

// LocalEngine is one level's game session. It validates every placement with
// the same rule the AI uses, applies scoring and hands the turn over.
type LocalEngine struct {
	layout   *game.Layout
	rng      *rand.Rand
	state    *game.GameState
	updateCh chan Update
	gameOver bool
}

func NewLocalEngine(layout *game.Layout, rng *rand.Rand) *LocalEngine {
	return &LocalEngine{
		layout: layout,
		rng:    rng,
	}
}

// Init deals a new game and returns its first state and the update getter.
func (e *LocalEngine) Init() (*game.GameState, UpdateGetter) {
	e.state = game.NewGameState(e.layout, e.rng)
	e.gameOver = e.state.IsOver()
	// Every update either fills a node or is a pass, and two passes in a row
	// end the game, so this capacity is never exceeded.
	e.updateCh = make(chan Update, 2*len(e.layout.Nodes)+2)
	updateCh := e.updateCh
	return e.state, func() (Update, bool) {
		select {
		case u, ok := <-updateCh:
			return u, ok
		default:
			// No updates yet
			return Update{}, false
		}
	}
}

// State returns the current state. Callers must not modify it.
func (e *LocalEngine) State() *game.GameState {
	return e.state
}

func (e *LocalEngine) IsOver() bool {
	return e.gameOver
}

// Play places a card for side and returns the scoring events it triggered.
func (e *LocalEngine) Play(side game.Side, move game.Move) ([]game.ScoringEvent, error) {
	if err := e.checkTurn(side); err != nil {
		return nil, err
	}
	newState, events, err := e.state.Play(move)
	if err != nil {
		return nil, fmt.Errorf("illegal move %s: %w", move, err)
	}
	e.advance(Update{Side: side, Move: move, Events: events, State: newState})
	return events, nil
}

// Pass hands the turn over. It is only allowed when side has no legal move.
func (e *LocalEngine) Pass(side game.Side) error {
	if err := e.checkTurn(side); err != nil {
		return err
	}
	if len(e.state.LegalMoves()) > 0 {
		return ErrMustPlay
	}
	e.advance(Update{Side: side, Passed: true, State: e.state.Pass()})
	return nil
}

func (e *LocalEngine) checkTurn(side game.Side) error {
	if e.state == nil {
		return fmt.Errorf("game has not been dealt")
	}
	if e.gameOver {
		return game.ErrGameOver
	}
	if side != e.state.Turn {
		return fmt.Errorf("%w: %s tried to move on %s's turn", game.ErrNotYourTurn, side, e.state.Turn)
	}
	return nil
}

func (e *LocalEngine) advance(u Update) {
	e.state = u.State
	e.updateCh <- u
	if e.state.IsOver() {
		e.gameOver = true
		close(e.updateCh)
	}
}
