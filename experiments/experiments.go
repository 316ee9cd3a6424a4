package experiments

import (
	"fmt"

	"halfmoon/engine"
	"halfmoon/experiments/metrics"
	"halfmoon/game"
	"halfmoon/meta"
	"halfmoon/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Config is shared by every experiment.
type Config struct {
	OutDir  string
	Games   int // Per matchup and layout; meta.NUM_GAMES if zero
	Seed    uint64
	Tuning  searcher.Tuning
	Layouts []*game.Layout // Built-in levels if empty
}

type matchUp struct {
	player, opponent metrics.AgentConfig
}

var tierConfigs = []metrics.AgentConfig{
	{ID: 1, Tier: int(searcher.Novice)},
	{ID: 2, Tier: int(searcher.Strategic)},
	{ID: 3, Tier: int(searcher.Adversarial)},
}

// RunTierExperiment plays every ordered pair of distinct tiers on every
// layout, so each tier gets to move first against each other tier.
func RunTierExperiment(cfg Config) (string, error) {
	matchUps := []matchUp{}
	for _, a := range tierConfigs {
		for _, b := range tierConfigs {
			if a.ID != b.ID {
				matchUps = append(matchUps, matchUp{player: a, opponent: b})
			}
		}
	}

	layouts := cfg.Layouts
	if len(layouts) == 0 {
		layouts = game.Levels()
	}
	return runExperiment("tiers", cfg, layouts, tierConfigs, matchUps)
}

func runExperiment(name string, cfg Config, layouts []*game.Layout, configs []metrics.AgentConfig, matchUps []matchUp) (string, error) {
	games := cfg.Games
	if games <= 0 {
		games = meta.NUM_GAMES
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return "", err
	}
	master := rand.New(rand.NewSource(cfg.Seed))

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for li, layout := range layouts {
		for mi, m := range matchUps {
			log.Info().Msgf("starting layout %q matchup %d of %d between player=%+v and opponent=%+v...",
				layout.Name, mi+1, len(matchUps), m.player, m.opponent)

			for i := 0; i < games; i++ {
				winner, gameMetric, moveMetrics := runGame(layout, m, cfg.Tuning, master)
				count++
				gameRecords = append(gameRecords, metrics.GameRecord{
					ID:         count,
					Agent1:     m.player.ID,
					Agent2:     m.opponent.ID,
					GameMetric: gameMetric,
				})
				for _, mm := range moveMetrics {
					moveRecords = append(moveRecords, metrics.MoveRecord{
						Game:       count,
						MoveMetric: mm,
					})
				}

				log.Debug().Msgf("completed layout %d matchup %d game %d with winner: %q", li+1, mi+1, i+1, winner)
			}
			log.Info().Msgf("completed layout %q matchup %d of %d", layout.Name, mi+1, len(matchUps))
		}
	}

	log.Info().Msgf("completed %s experiment with %d games", name, count)
	return store(cfg.OutDir, name, configs, gameRecords, moveRecords)
}

func store(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame plays one game. Every random source is derived from master so a
// whole experiment is reproducible from its seed.
func runGame(layout *game.Layout, m matchUp, tuning searcher.Tuning, master *rand.Rand) (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	player := createSelector(m.player, tuning, master.Uint64())
	opponent := createSelector(m.opponent, tuning, master.Uint64())
	deal := rand.New(rand.NewSource(master.Uint64()))

	e := engine.LocalEngine(layout, player, opponent, deal)
	return e.Run()
}

func createSelector(config metrics.AgentConfig, tuning searcher.Tuning, seed uint64) *searcher.Selector {
	return searcher.NewSelector(searcher.Tier(config.Tier),
		searcher.WithTuning(tuning),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
}
