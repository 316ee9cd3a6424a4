package searcher

import (
	"fmt"
	"strconv"
	"strings"
)

// Tier is the AI difficulty. Each tier adds scoring terms to the one below.
type Tier int

const (
	Novice      Tier = iota // Immediate points, with random blunders
	Strategic               // Bonuses for steals, chains, pairs, center and clustering
	Adversarial             // Also denies the other side's best reply at the node
)

func (t Tier) String() string {
	switch t {
	case Novice:
		return "novice"
	case Strategic:
		return "strategic"
	case Adversarial:
		return "adversarial"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// TierForLevel maps a 0-based level index to its difficulty: the first level
// is novice, the second strategic, every later one adversarial.
func TierForLevel(levelIndex int) Tier {
	switch {
	case levelIndex <= 0:
		return Novice
	case levelIndex == 1:
		return Strategic
	default:
		return Adversarial
	}
}

// ParseTier accepts a tier name or its number.
func ParseTier(text string) (Tier, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if n, err := strconv.Atoi(text); err == nil {
		if n < int(Novice) || n > int(Adversarial) {
			return Novice, fmt.Errorf("tier %d out of range [0, 2]", n)
		}
		return Tier(n), nil
	}
	for t := Novice; t <= Adversarial; t++ {
		if t.String() == text {
			return t, nil
		}
	}
	return Novice, fmt.Errorf("unknown tier %q", text)
}
