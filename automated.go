package main

import (
	"errors"
	"math/rand"

	"terminal-chess/board"
	"terminal-chess/game"
)

var errNoMoves = errors.New("no legal moves")

// pickMove chooses uniformly among the legal moves of the side to move and
// always promotes to a queen.
func pickMove(rng *rand.Rand, s *game.State) (board.Move, error) {
	moves, err := s.Board.AllLegalMoves(s.Turn())
	if err != nil {
		return board.Move{}, err
	}
	if len(moves) == 0 {
		return board.Move{}, errNoMoves
	}

	m := moves[rng.Intn(len(moves))]
	if s.NeedsPromotion(m.From, m.To) {
		m.Promotion = board.Queen
	}
	return m, nil
}
