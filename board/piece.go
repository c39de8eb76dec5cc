package board

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

func ParseColor(s string) (Color, bool) {
	switch s {
	case "white":
		return White, true
	case "black":
		return Black, true
	}
	return 0, false
}

// forward is the rank delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) backRank() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) pawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

func (c Color) promotionRank() int {
	return c.Opposite().backRank()
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var kindNames = [...]string{
	NoKind: "none",
	Pawn:   "pawn",
	Rook:   "rook",
	Knight: "knight",
	Bishop: "bishop",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind accepts the lower-case name ("knight") or the English letter ("n").
func ParseKind(s string) (Kind, bool) {
	for k := Pawn; k <= King; k++ {
		if s == kindNames[k] {
			return k, true
		}
	}
	if len(s) == 1 {
		for k := Pawn; k <= King; k++ {
			if lower(k.Letter()) == lower(s[0]) {
				return k, true
			}
		}
	}
	return NoKind, false
}

// Letter is the upper-case English piece letter.
func (k Kind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Rook:
		return 'R'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return '?'
}

// CanPromoteTo reports whether a pawn may become k.
func (k Kind) CanPromoteTo() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is the occupant of a square. The zero value is an empty square.
type Piece struct {
	Kind                Kind
	Color               Color
	HasMoved            bool
	EnPassantVulnerable bool
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Kind)
}

// Symbol is the FEN-style letter: upper case for white, lower case for black.
func (p Piece) Symbol() byte {
	if p.Color == Black {
		return lower(p.Kind.Letter())
	}
	return p.Kind.Letter()
}

// Placed is a piece together with the square holding it.
type Placed struct {
	Piece
	Square Square
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}
