package game

import (
	"fmt"

	"terminal-chess/board"
)

type StatusKind uint8

const (
	Ongoing StatusKind = iota
	Check
	Checkmate
	Stalemate
	DeadPosition
	Resigned
)

func (k StatusKind) String() string {
	switch k {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DeadPosition:
		return "dead position"
	case Resigned:
		return "resigned"
	default:
		return fmt.Sprintf("status(%d)", uint8(k))
	}
}

// Status is the state of play. Color is the side in check for Check and the
// winner for Checkmate and Resigned; it is unused otherwise.
type Status struct {
	Kind  StatusKind
	Color board.Color
}

// Over reports whether no further moves may be made.
func (s Status) Over() bool {
	switch s.Kind {
	case Checkmate, Stalemate, DeadPosition, Resigned:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s.Kind {
	case Check:
		return fmt.Sprintf("%s is in check", s.Color)
	case Checkmate:
		return fmt.Sprintf("Checkmate - %s wins", s.Color)
	case Resigned:
		return fmt.Sprintf("%s resigned - %s wins", s.Color.Opposite(), s.Color)
	case Stalemate:
		return "Stalemate"
	case DeadPosition:
		return "Draw - only kings remain"
	default:
		return s.Kind.String()
	}
}
