package game

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

// Side identifies who controls a card or whose turn it is.
type Side int

const (
	NoSide   Side = iota // 0
	Player               // 1
	Opponent             // 2
)

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Opponent:
		return "opponent"
	default:
		return ""
	}
}

// Other returns the side across the table. NoSide has no other side.
func (s Side) Other() Side {
	switch s {
	case Player:
		return Opponent
	case Opponent:
		return Player
	default:
		return NoSide
	}
}

// ParseSide accepts the text form produced by String.
func ParseSide(text string) (Side, error) {
	switch text {
	case "player":
		return Player, nil
	case "opponent":
		return Opponent, nil
	case "", "null", "none":
		return NoSide, nil
	}
	return NoSide, fmt.Errorf("unknown side %q", text)
}

func (s Side) MarshalYAML() (interface{}, error) {
	if s == NoSide {
		return nil, nil
	}
	return s.String(), nil
}

func (s *Side) UnmarshalYAML(value *yaml.Node) error {
	side, err := ParseSide(value.Value)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// NumPhases is the length of the moon phase cycle.
const NumPhases = 8

// Phase is a position on the 8-point moon cycle.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var phaseNames = [NumPhases]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) Valid() bool {
	return p >= 0 && p < NumPhases
}

// Step moves delta positions around the cycle.
func (p Phase) Step(delta int) Phase {
	return Phase(((int(p)+delta)%NumPhases + NumPhases) % NumPhases)
}

func (p Phase) Next() Phase { return p.Step(1) }

func (p Phase) Prev() Phase { return p.Step(-1) }

// Opposite is the phase half a cycle away (new moon <-> full moon).
func (p Phase) Opposite() Phase { return p.Step(NumPhases / 2) }

// Card is a single moon card. Only Owner changes after the card is dealt.
type Card struct {
	ID    string `yaml:"id"`
	Phase Phase  `yaml:"phase"`
	Owner Side   `yaml:"owner"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s(%s, %s)", c.ID, c.Phase, c.Owner)
}

// NewDeck deals size cards of uniformly random phase owned by owner.
// IDs are drawn from rng so a seeded rng reproduces the whole deck.
func NewDeck(size int, owner Side, rng *rand.Rand) []Card {
	deck := make([]Card, size)
	for i := range deck {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// rng never fails to read
			panic(err)
		}
		deck[i] = Card{
			ID:    owner.String() + "-" + id.String(),
			Phase: Phase(rng.Intn(NumPhases)),
			Owner: owner,
		}
	}
	return deck
}
