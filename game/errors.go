package game

import "errors"

var (
	ErrInvalidMove            = errors.New("invalid move")
	ErrInvalidPromotionChoice = errors.New("invalid promotion choice")
	ErrGameOver               = errors.New("game over")
	ErrInvalidState           = errors.New("invalid game state")
)
