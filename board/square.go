package board

import "fmt"

// Square indexes the 64 cells: a1 = 0, b1 = 1, ... h8 = 63.
type Square uint8

const NumSquares = 64

// SquareAt returns the square for zero-based file and rank, or false when the
// coordinates fall off the board.
func SquareAt(file, rank int) (Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, false
	}
	return Square(rank*8 + file), true
}

// ParseSquare converts "e4" style text to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square '%s'", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	sq, ok := SquareAt(file, rank)
	if !ok {
		return 0, fmt.Errorf("invalid square '%s'", s)
	}
	return sq, nil
}

// File is zero-based, 0 = a.
func (s Square) File() int { return int(s) % 8 }

// Rank is zero-based, 0 = rank 1.
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.File(), s.Rank()+1)
}

func (s Square) offset(d direction) (Square, bool) {
	return SquareAt(s.File()+d.file, s.Rank()+d.rank)
}
