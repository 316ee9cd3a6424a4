package game

import "errors"

var (
	ErrUnknownNode      = errors.New("unknown node")
	ErrEmptyNode        = errors.New("node holds no card")
	ErrOccupied         = errors.New("node is occupied")
	ErrIllegalPlacement = errors.New("node is not adjacent to any placed card")
	ErrCardNotInHand    = errors.New("card is not in hand")
	ErrNotYourTurn      = errors.New("not this side's turn")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidLayout    = errors.New("invalid layout")
)
