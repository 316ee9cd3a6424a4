package game

import "fmt"

// Move places the hand card CardID on node NodeID.
type Move struct {
	CardID string
	NodeID string
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%s", m.CardID, m.NodeID)
}
