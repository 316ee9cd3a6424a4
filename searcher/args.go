package searcher

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the weights of the move scoring heuristics.
type Tuning struct {
	RandomMoveChance  float64 `yaml:"random_move_chance"`  // Novice: chance of a blind random move
	NoviceTieBreak    float64 `yaml:"novice_tie_break"`    // Novice: random score range for pointless moves
	StealBonus        float64 `yaml:"steal_bonus"`         // A chain takes cards from the other side
	OwnChainBonus     float64 `yaml:"own_chain_bonus"`     // A chain takes nothing
	PairBonus         float64 `yaml:"pair_bonus"`          // Per PAIR or FULL_MOON
	CenterRadius      float64 `yaml:"center_radius"`       // Distance from center where the bonus hits zero
	CenterScale       float64 `yaml:"center_scale"`        // Divides the center bonus
	ClusterBonus      float64 `yaml:"cluster_bonus"`       // Per neighbor holding an own card
	CounterWeight     float64 `yaml:"counter_weight"`      // Adversarial: weight of the denied reply
	CounterStealBonus float64 `yaml:"counter_steal_bonus"` // Adversarial: the reply would steal
	Jitter            float64 `yaml:"jitter"`              // Random tie break added to every candidate
}

var DefaultTuning = Tuning{
	RandomMoveChance:  0.3,
	NoviceTieBreak:    0.5,
	StealBonus:        10,
	OwnChainBonus:     5,
	PairBonus:         2,
	CenterRadius:      50,
	CenterScale:       10,
	ClusterBonus:      1.5,
	CounterWeight:     1.5,
	CounterStealBonus: 10,
	Jitter:            0.1,
}

func (t Tuning) Validate() error {
	if t.RandomMoveChance < 0 || t.RandomMoveChance > 1 {
		return fmt.Errorf("random_move_chance %v out of range [0, 1]", t.RandomMoveChance)
	}
	if t.NoviceTieBreak < 0 || t.NoviceTieBreak >= 1 {
		return fmt.Errorf("novice_tie_break %v out of range [0, 1)", t.NoviceTieBreak)
	}
	if t.Jitter < 0 || t.Jitter >= 1 {
		return fmt.Errorf("jitter %v out of range [0, 1)", t.Jitter)
	}
	if t.CenterScale <= 0 {
		return fmt.Errorf("center_scale must be positive, got %v", t.CenterScale)
	}
	return nil
}

// LoadTuning decodes YAML over DefaultTuning, so missing keys keep their
// default weight. An empty document yields the defaults.
func LoadTuning(r io.Reader) (Tuning, error) {
	t := DefaultTuning
	if err := yaml.NewDecoder(r).Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("failed to decode tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}

func LoadTuningFile(path string) (Tuning, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to open tuning file: %w", err)
	}
	defer f.Close()
	return LoadTuning(f)
}
