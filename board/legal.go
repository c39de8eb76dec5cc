package board

import "fmt"

// Move is a from/to pair. Promotion is only read when a pawn reaches its
// last rank.
type Move struct {
	From      Square
	To        Square
	Promotion Kind
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(lower(m.Promotion.Letter()))
	}
	return s
}

// Outcome records the side effects of an applied move.
type Outcome struct {
	Captured  *Placed
	EnPassant bool
	Castled   bool
	Promoted  bool
}

// NeedsPromotion reports whether moving from to to takes a pawn to its last rank.
func (b *Board) NeedsPromotion(from, to Square) bool {
	p, ok := b.PieceAt(from)
	return ok && p.Kind == Pawn && to.Rank() == p.Color.promotionRank()
}

// Apply performs m without checking that it is legal. It is used both for
// real moves and for speculative moves on a clone.
func (b *Board) Apply(m Move) (Outcome, error) {
	var out Outcome

	p, ok := b.PieceAt(m.From)
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrNoPiece, m.From)
	}

	promote := b.NeedsPromotion(m.From, m.To)
	if promote && !m.Promotion.CanPromoteTo() {
		return out, fmt.Errorf("%w: %s", ErrPromotion, m.Promotion)
	}

	fileDelta := m.To.File() - m.From.File()

	switch {
	case p.Kind == Pawn && fileDelta != 0 && b.empty(m.To):
		// en passant: the victim stands beside the pawn's origin
		victimSq, _ := SquareAt(m.To.File(), m.From.Rank())
		if victim, ok := b.PieceAt(victimSq); ok {
			out.Captured = &Placed{Piece: victim, Square: victimSq}
		}
		b.Clear(victimSq)
		out.EnPassant = true

	case p.Kind == King && !p.HasMoved && abs(fileDelta) == 2:
		for _, side := range castleSides {
			if side.kingTo != m.To.File() {
				continue
			}
			rank := m.From.Rank()
			rookFrom, _ := SquareAt(side.rookFrom, rank)
			rookTo, _ := SquareAt(side.rookTo, rank)
			rook, ok := b.PieceAt(rookFrom)
			if !ok {
				continue
			}
			rook.HasMoved = true
			b.Clear(rookFrom)
			b.Place(rookTo, rook)
			out.Castled = true
		}
	}

	if victim, ok := b.PieceAt(m.To); ok {
		out.Captured = &Placed{Piece: victim, Square: m.To}
	}

	b.Clear(m.From)

	if promote {
		b.Place(m.To, Piece{Kind: m.Promotion, Color: p.Color})
		out.Promoted = true
		return out, nil
	}

	if p.Kind == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.EnPassantVulnerable = true
	}
	p.HasMoved = true
	b.Place(m.To, p)

	return out, nil
}

// LegalMoves returns the destinations of the piece on from that do not leave
// its own king attacked, in generation order with en passant captures last.
func (b *Board) LegalMoves(from Square) ([]Square, error) {
	p, ok := b.PieceAt(from)
	if !ok {
		return nil, nil
	}

	if _, err := b.King(p.Color); err != nil {
		return nil, err
	}

	candidates := b.PseudoLegalMoves(from)
	if p.Kind == Pawn {
		candidates = append(candidates, b.enPassantTargets(from, p)...)
	}

	moves := make([]Square, 0, len(candidates))
	for _, to := range candidates {
		safe, err := b.leavesKingSafe(Move{From: from, To: to, Promotion: Queen}, p.Color)
		if err != nil {
			return nil, err
		}
		if safe {
			moves = append(moves, to)
		}
	}

	return moves, nil
}

func (b *Board) leavesKingSafe(m Move, color Color) (bool, error) {
	clone := b.Clone()
	if _, err := clone.Apply(m); err != nil {
		return false, err
	}

	inCheck, err := clone.InCheck(color)
	if err != nil {
		return false, err
	}
	return !inCheck, nil
}

// enPassantTargets returns the empty diagonal squares behind an adjacent
// enemy pawn that has just advanced two squares.
func (b *Board) enPassantTargets(from Square, p Piece) []Square {
	var targets []Square
	for _, df := range []int{-1, 1} {
		side, ok := from.offset(direction{file: df})
		if !ok {
			continue
		}

		victim, occupied := b.PieceAt(side)
		if !occupied || victim.Kind != Pawn || victim.Color == p.Color || !victim.EnPassantVulnerable {
			continue
		}

		to, ok := from.offset(direction{file: df, rank: p.Color.forward()})
		if ok && b.empty(to) {
			targets = append(targets, to)
		}
	}
	return targets
}

// InCheck reports whether the king of color c is attacked.
func (b *Board) InCheck(c Color) (bool, error) {
	king, err := b.King(c)
	if err != nil {
		return false, err
	}
	return b.IsAttacked(king, c.Opposite()), nil
}

// HasLegalMove reports whether any piece of color c has a legal destination.
func (b *Board) HasLegalMove(c Color) (bool, error) {
	for _, p := range b.PiecesOf(c) {
		moves, err := b.LegalMoves(p.Square)
		if err != nil {
			return false, err
		}
		if len(moves) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// AllLegalMoves lists every legal move for color c, piece by piece in square
// order. Promotions are listed once, with Promotion left as NoKind.
func (b *Board) AllLegalMoves(c Color) ([]Move, error) {
	var moves []Move
	for _, p := range b.PiecesOf(c) {
		dests, err := b.LegalMoves(p.Square)
		if err != nil {
			return nil, err
		}
		for _, to := range dests {
			moves = append(moves, Move{From: p.Square, To: to})
		}
	}
	return moves, nil
}
