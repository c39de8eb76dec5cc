package board

import "errors"

var (
	// ErrBrokenInvariant means the position is corrupt (for example a king is
	// missing). Play must not continue on such a board.
	ErrBrokenInvariant = errors.New("broken invariant")
	ErrNoPiece         = errors.New("no piece on square")
	ErrPromotion       = errors.New("invalid promotion kind")
)
