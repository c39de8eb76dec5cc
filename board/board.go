package board

import "fmt"

// Board holds the occupant of each square. A piece's location is the index
// of the cell holding it, so the grid and the flat piece list never diverge
// and copying a Board by value yields an independent position.
type Board struct {
	squares [NumSquares]Piece
}

var backRankKinds = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// NewStandard returns the standard starting position.
func NewStandard() *Board {
	b := New()
	for _, color := range []Color{White, Black} {
		for file := 0; file < 8; file++ {
			back, _ := SquareAt(file, color.backRank())
			b.Place(back, Piece{Kind: backRankKinds[file], Color: color})

			pawn, _ := SquareAt(file, color.pawnRank())
			b.Place(pawn, Piece{Kind: Pawn, Color: color})
		}
	}
	return b
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.squares[sq]
	return p, p.Kind != NoKind
}

func (b *Board) empty(sq Square) bool {
	return b.squares[sq].Kind == NoKind
}

// Place puts p on sq, replacing any previous occupant.
func (b *Board) Place(sq Square, p Piece) {
	b.squares[sq] = p
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.squares[sq] = Piece{}
}

// Move relocates the occupant of from to to, replacing whatever was on to.
// Flags on the piece are left untouched.
func (b *Board) Move(from, to Square) {
	p := b.squares[from]
	b.squares[from] = Piece{}
	b.squares[to] = p
}

// Clone returns an independent copy of the position.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Pieces returns every live piece in square order (a1, b1, ... h8).
func (b *Board) Pieces() []Placed {
	var pieces []Placed
	for i, p := range b.squares {
		if p.Kind == NoKind {
			continue
		}
		pieces = append(pieces, Placed{Piece: p, Square: Square(i)})
	}
	return pieces
}

// PiecesOf returns the live pieces of one color in square order.
func (b *Board) PiecesOf(c Color) []Placed {
	var pieces []Placed
	for i, p := range b.squares {
		if p.Kind == NoKind || p.Color != c {
			continue
		}
		pieces = append(pieces, Placed{Piece: p, Square: Square(i)})
	}
	return pieces
}

// King finds the king of color c. A missing king is a broken invariant.
func (b *Board) King(c Color) (Square, error) {
	for i, p := range b.squares {
		if p.Kind == King && p.Color == c {
			return Square(i), nil
		}
	}
	return 0, fmt.Errorf("%w: no %s king on the board", ErrBrokenInvariant, c)
}

// OnlyKings reports whether every remaining piece is a king.
func (b *Board) OnlyKings() bool {
	for _, p := range b.squares {
		if p.Kind != NoKind && p.Kind != King {
			return false
		}
	}
	return true
}

// ClearEnPassant drops the en passant flag from every pawn of color c.
func (b *Board) ClearEnPassant(c Color) {
	for i := range b.squares {
		p := &b.squares[i]
		if p.Kind == Pawn && p.Color == c {
			p.EnPassantVulnerable = false
		}
	}
}

// String draws the board with rank 8 at the top, '.' for empty squares.
func (b *Board) String() string {
	var buf []byte
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq, _ := SquareAt(file, rank)
			if p, ok := b.PieceAt(sq); ok {
				buf = append(buf, p.Symbol())
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
