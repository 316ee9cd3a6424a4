package experiments

import (
	"fmt"

	"halfmoon/game"
)

// RunThroughputExperiment pits each tier against itself on square grids of the
// given sizes. Move records carry per-selection durations and evaluation
// counts, which show how selection cost grows with the board.
func RunThroughputExperiment(cfg Config, sizes []int) (string, error) {
	if len(sizes) == 0 {
		return "", fmt.Errorf("no grid sizes")
	}
	layouts := make([]*game.Layout, 0, len(sizes))
	for i, n := range sizes {
		if n < 1 {
			return "", fmt.Errorf("invalid grid size %d", n)
		}
		grid := game.Grid(n, n)
		grid.Level = i + 1
		layouts = append(layouts, grid)
	}

	// Same config for both sides for the same playing strength
	// and similar game length
	matchUps := []matchUp{}
	for _, config := range tierConfigs {
		matchUps = append(matchUps, matchUp{player: config, opponent: config})
	}
	return runExperiment("throughput", cfg, layouts, tierConfigs, matchUps)
}
