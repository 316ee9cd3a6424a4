package engine

import (
	"time"

	"halfmoon/experiments/metrics"
	"halfmoon/game"
	"halfmoon/gamemaster"
	"halfmoon/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var _ Engine = (*Local)(nil)

type Local struct {
	session *gamemaster.LocalEngine
	agents  map[game.Side]Agent
}

// LocalEngine sets up a level between two agents; player moves first.
func LocalEngine(layout *game.Layout, player, opponent Agent, rng *rand.Rand) *Local {
	if player == nil || opponent == nil {
		panic("need an agent for both sides")
	}
	if err := layout.Validate(); err != nil {
		panic(err)
	}
	return &Local{
		session: gamemaster.NewLocalEngine(layout, rng),
		agents: map[game.Side]Agent{
			game.Player:   player,
			game.Opponent: opponent,
		},
	}
}

// Run executes the entire game loop until the level is over.
func (e *Local) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	state, updates := e.session.Init()
	gameMetric := metrics.GameMetric{
		Level:          state.Layout.Level,
		StartingPlayer: state.Turn.String(),
		StartTime:      time.Now(),
	}

	log.Info().Msgf("level %d (%s): %s is starting", state.Layout.Level, state.Layout.Name, state.Turn)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for ; !e.session.IsOver() && step <= meta.MAX_TURNS; step++ {
		state := e.session.State()
		side := state.Turn

		move, ok, search := e.agents[side].FindMove(state)
		move, events, played := e.turn(state, move, ok)

		moveMetric := metrics.MoveMetric{
			Step:         step,
			Player:       side.String(),
			Passed:       !played,
			Points:       game.Tally(events)[side],
			SearchMetric: search,
		}
		if played {
			moveMetric.Move = move.String()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		for u, ok := updates(); ok; u, ok = updates() {
			logUpdate(u)
		}
	}

	final := e.session.State()
	if !final.IsOver() {
		log.Warn().Msgf("stopped after %d turns (level not finished)", meta.MAX_TURNS)
	}

	winner := final.Winner()
	gameMetric.Winner = winner.String()
	gameMetric.PlayerScore = final.Scores[game.Player]
	gameMetric.OpponentScore = final.Scores[game.Opponent]
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step - 1

	log.Info().
		Int("player", gameMetric.PlayerScore).
		Int("opponent", gameMetric.OpponentScore).
		Msgf("level %d over! winner: %q", final.Layout.Level, gameMetric.Winner)
	return winner, gameMetric, moveMetrics
}

// turn applies the agent's decision. An illegal move or a pass while a legal
// move exists is replaced by the first legal move.
func (e *Local) turn(state *game.GameState, move game.Move, ok bool) (game.Move, []game.ScoringEvent, bool) {
	side := state.Turn
	if ok {
		events, err := e.session.Play(side, move)
		if err == nil {
			return move, events, true
		}
		log.Warn().Err(err).Str("side", side.String()).Msg("agent returned an illegal move")
	}

	if err := e.session.Pass(side); err == nil {
		return game.Move{}, nil, false
	}

	fallbackMoves := state.LegalMoves()
	if len(fallbackMoves) == 0 {
		panic("no legal moves and passing refused")
	}
	log.Warn().Str("side", side.String()).Msgf("forcing fallback move %s", fallbackMoves[0])
	events, err := e.session.Play(side, fallbackMoves[0])
	if err != nil {
		panic(err)
	}
	return fallbackMoves[0], events, true
}

func logUpdate(u gamemaster.Update) {
	if u.Passed {
		log.Debug().Str("side", u.Side.String()).Msg("passed")
		return
	}
	log.Debug().
		Str("side", u.Side.String()).
		Str("move", u.Move.String()).
		Int("events", len(u.Events)).
		Int("player_score", u.State.Scores[game.Player]).
		Int("opponent_score", u.State.Scores[game.Opponent]).
		Msg("placed")
}
