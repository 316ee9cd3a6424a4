package main

import (
	"errors"
	"flag"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"halfmoon/engine"
	"halfmoon/experiments"
	"halfmoon/game"
	"halfmoon/searcher"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	log.Logger = consoleLogger(os.Stderr)
	if err := loadEnv(); err != nil {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	mode := flag.String("mode", env("HALFMOON_MODE", "game"), "game, tiers or throughput")
	level := flag.Int("level", envInt("HALFMOON_LEVEL", 0), "level index to play in game mode")
	playerTier := flag.String("player-tier", env("HALFMOON_PLAYER_TIER", "adversarial"), "player AI tier")
	opponentTier := flag.String("opponent-tier", env("HALFMOON_OPPONENT_TIER", ""), "opponent AI tier, by level if empty")
	seed := flag.Uint64("seed", uint64(envInt("HALFMOON_SEED", 0)), "random seed, time based if 0")
	tuningPath := flag.String("tuning", env("HALFMOON_TUNING", ""), "YAML file overriding AI weights")
	layoutsPath := flag.String("layouts", env("HALFMOON_LAYOUTS", ""), "YAML file with custom levels")
	games := flag.Int("games", envInt("HALFMOON_GAMES", 0), "games per matchup and level in experiment modes")
	grids := flag.String("grids", env("HALFMOON_GRIDS", "3,5,7"), "grid sizes for the throughput experiment")
	out := flag.String("out", env("HALFMOON_OUT", "results"), "directory for experiment results")
	logLevel := flag.String("log-level", env("HALFMOON_LOG_LEVEL", "info"), "zerolog level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("seed", *seed).Msg("starting")

	tuning := searcher.DefaultTuning
	if *tuningPath != "" {
		if tuning, err = searcher.LoadTuningFile(*tuningPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load tuning")
		}
	}
	layouts := game.Levels()
	if *layoutsPath != "" {
		if layouts, err = game.LoadLayoutsFile(*layoutsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load layouts")
		}
	}

	cfg := experiments.Config{OutDir: *out, Games: *games, Seed: *seed, Tuning: tuning, Layouts: layouts}
	switch *mode {
	case "game":
		if *level < 0 || *level >= len(layouts) {
			log.Fatal().Msgf("level %d out of range [0, %d)", *level, len(layouts))
		}
		playGame(layouts[*level], *level, *playerTier, *opponentTier, tuning, *seed)
	case "tiers":
		if _, err := experiments.RunTierExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("tier experiment failed")
		}
	case "throughput":
		sizes, err := parseSizes(*grids)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid grid sizes")
		}
		if _, err := experiments.RunThroughputExperiment(cfg, sizes); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func playGame(layout *game.Layout, levelIndex int, playerTier, opponentTier string, tuning searcher.Tuning, seed uint64) {
	pt, err := searcher.ParseTier(playerTier)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid player tier")
	}
	ot := searcher.TierForLevel(levelIndex)
	if opponentTier != "" {
		if ot, err = searcher.ParseTier(opponentTier); err != nil {
			log.Fatal().Err(err).Msg("invalid opponent tier")
		}
	}

	rng := rand.New(rand.NewSource(seed))
	player := searcher.NewSelector(pt, searcher.WithTuning(tuning), searcher.WithSeed(rng.Uint64()), searcher.WithMetrics())
	opponent := searcher.NewSelector(ot, searcher.WithTuning(tuning), searcher.WithSeed(rng.Uint64()), searcher.WithMetrics())

	log.Info().Msgf("%s AI (player) vs %s AI (opponent)", pt, ot)
	e := engine.LocalEngine(layout, player, opponent, rng)
	e.Run()
}

func consoleLogger(out io.Writer) zerolog.Logger {
	return log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly})
}

// loadEnv reads .env from the working directory. A missing file is fine, the
// flags have defaults.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func parseSizes(text string) ([]int, error) {
	sizes := []int{}
	for _, field := range strings.Split(text, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Msgf("ignoring %s=%q: not an integer", key, v)
		return fallback
	}
	return n
}
