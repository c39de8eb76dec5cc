package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"terminal-chess/board"
)

type PlayerKind uint8

const (
	Human PlayerKind = iota
	Automated
)

func (k PlayerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Automated:
		return "automated"
	default:
		return fmt.Sprintf("player(%d)", uint8(k))
	}
}

func ParsePlayerKind(s string) (PlayerKind, bool) {
	switch s {
	case "human":
		return Human, true
	case "automated":
		return Automated, true
	}
	return 0, false
}

type Player struct {
	Name  string
	Color board.Color
	Kind  PlayerKind
}

// State is everything needed to resume a game.
type State struct {
	Players [2]Player
	Board   board.Board
	// Current indexes Players and names the side to move.
	Current int

	resigned *Status
}

// New starts a game from the standard position. The white player moves first.
func New(first, second Player) (*State, error) {
	return Restore([2]Player{first, second}, board.NewStandard(), -1)
}

// Restore rebuilds a game from its parts. A negative current index selects
// the white player.
func Restore(players [2]Player, b *board.Board, current int) (*State, error) {
	if players[0].Color == players[1].Color {
		return nil, fmt.Errorf("%w: both players are %s", ErrInvalidState, players[0].Color)
	}
	if current < 0 {
		current = 0
		if players[1].Color == board.White {
			current = 1
		}
	}
	if current > 1 {
		return nil, fmt.Errorf("%w: current player index %d", ErrInvalidState, current)
	}

	for _, color := range []board.Color{board.White, board.Black} {
		kings := 0
		for _, p := range b.PiecesOf(color) {
			if p.Kind == board.King {
				kings++
			}
		}
		if kings != 1 {
			return nil, fmt.Errorf("%w: %d %s kings", ErrInvalidState, kings, color)
		}
	}

	return &State{Players: players, Board: *b, Current: current}, nil
}

func (s *State) CurrentPlayer() Player {
	return s.Players[s.Current]
}

// Turn is the color to move.
func (s *State) Turn() board.Color {
	return s.Players[s.Current].Color
}

func (s *State) PlayerFor(c board.Color) Player {
	if s.Players[0].Color == c {
		return s.Players[0]
	}
	return s.Players[1]
}

// LegalMoves lists the destinations of the piece on from. The list is empty
// when the square is empty, holds the opponent's piece, or the game is over.
func (s *State) LegalMoves(from board.Square) ([]board.Square, error) {
	if s.resigned != nil || s.Board.OnlyKings() {
		return nil, nil
	}

	p, ok := s.Board.PieceAt(from)
	if !ok || p.Color != s.Turn() {
		return nil, nil
	}

	return s.Board.LegalMoves(from)
}

// NeedsPromotion reports whether moving from to to promotes a pawn, so the
// caller knows to ask for a piece kind.
func (s *State) NeedsPromotion(from, to board.Square) bool {
	return s.Board.NeedsPromotion(from, to)
}

// ApplyMove plays one move for the side to move. promotion is required for a
// pawn reaching its last rank and ignored otherwise.
func (s *State) ApplyMove(from, to board.Square, promotion board.Kind) error {
	status, err := s.Status()
	if err != nil {
		return err
	}
	if status.Over() {
		return fmt.Errorf("%w: %s", ErrGameOver, status)
	}

	mover := s.Turn()
	s.Board.ClearEnPassant(mover)

	legal, err := s.LegalMoves(from)
	if err != nil {
		return err
	}
	if !slices.Contains(legal, to) {
		return fmt.Errorf("%w: %s%s", ErrInvalidMove, from, to)
	}

	if s.Board.NeedsPromotion(from, to) {
		if !promotion.CanPromoteTo() {
			return fmt.Errorf("%w: %s", ErrInvalidPromotionChoice, promotion)
		}
	} else {
		promotion = board.NoKind
	}

	move := board.Move{From: from, To: to, Promotion: promotion}
	outcome, err := s.Board.Apply(move)
	if err != nil {
		return err
	}

	event := log.Debug().
		Str("player", s.CurrentPlayer().Name).
		Stringer("color", mover).
		Stringer("move", move)
	if outcome.Captured != nil {
		event = event.Stringer("captured", outcome.Captured.Piece)
	}
	event.Bool("castle", outcome.Castled).
		Bool("en_passant", outcome.EnPassant).
		Bool("promotion", outcome.Promoted).
		Msg("move applied")

	s.Current = 1 - s.Current
	s.Board.ClearEnPassant(s.Turn())

	return nil
}

// Status evaluates the position for the side to move.
func (s *State) Status() (Status, error) {
	if s.resigned != nil {
		return *s.resigned, nil
	}

	turn := s.Turn()
	inCheck, err := s.Board.InCheck(turn)
	if err != nil {
		return Status{}, err
	}
	hasMove, err := s.Board.HasLegalMove(turn)
	if err != nil {
		return Status{}, err
	}

	var status Status
	switch {
	case inCheck && !hasMove:
		status = Status{Kind: Checkmate, Color: turn.Opposite()}
	case !hasMove:
		status = Status{Kind: Stalemate}
	case s.Board.OnlyKings():
		status = Status{Kind: DeadPosition}
	case inCheck:
		status = Status{Kind: Check, Color: turn}
	default:
		status = Status{Kind: Ongoing}
	}

	if status.Over() {
		log.Debug().Stringer("status", status).Msg("game over")
	}
	return status, nil
}

// Resign ends the game in favour of the opponent of c. A game that is
// already over keeps its result.
func (s *State) Resign(c board.Color) Status {
	if status, err := s.Status(); err == nil && status.Over() {
		return status
	}

	s.resigned = &Status{Kind: Resigned, Color: c.Opposite()}
	log.Debug().Stringer("color", c).Msg("resigned")
	return *s.resigned
}
