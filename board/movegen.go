package board

type direction struct {
	file int
	rank int
}

var (
	// down, up, right, left
	rookRays = []direction{
		{file: 0, rank: -1},
		{file: 0, rank: 1},
		{file: 1, rank: 0},
		{file: -1, rank: 0},
	}

	// up-right, up-left, down-right, down-left
	bishopRays = []direction{
		{file: 1, rank: 1},
		{file: -1, rank: 1},
		{file: 1, rank: -1},
		{file: -1, rank: -1},
	}

	queenRays = append(append([]direction{}, rookRays...), bishopRays...)

	knightSteps = []direction{
		{file: 1, rank: 2},
		{file: 2, rank: 1},
		{file: 2, rank: -1},
		{file: 1, rank: -2},
		{file: -1, rank: -2},
		{file: -2, rank: -1},
		{file: -2, rank: 1},
		{file: -1, rank: 2},
	}

	// clockwise from north
	kingSteps = []direction{
		{file: 0, rank: 1},
		{file: 1, rank: 1},
		{file: 1, rank: 0},
		{file: 1, rank: -1},
		{file: 0, rank: -1},
		{file: -1, rank: -1},
		{file: -1, rank: 0},
		{file: -1, rank: 1},
	}
)

// movement describes how a kind moves: rays are walked until blocked, steps
// are single jumps. Pawns are handled separately.
type movement struct {
	rays  []direction
	steps []direction
}

var movements = [...]movement{
	Rook:   {rays: rookRays},
	Knight: {steps: knightSteps},
	Bishop: {rays: bishopRays},
	Queen:  {rays: queenRays},
	King:   {steps: kingSteps},
}

// castleSide describes one castling option by zero-based files on the back rank.
type castleSide struct {
	rookFrom int
	kingTo   int
	rookTo   int
}

const kingHomeFile = 4

// queen side first, then king side
var castleSides = []castleSide{
	{rookFrom: 0, kingTo: 2, rookTo: 3},
	{rookFrom: 7, kingTo: 6, rookTo: 5},
}

// PseudoLegalMoves returns the destinations of the piece on from in a fixed
// order, without regard to whether the move leaves its own king attacked.
// En passant captures are not included.
func (b *Board) PseudoLegalMoves(from Square) []Square {
	p, ok := b.PieceAt(from)
	if !ok {
		return nil
	}

	switch p.Kind {
	case Pawn:
		return b.pawnMoves(from, p)
	case King:
		moves := b.patternMoves(from, p)
		return append(moves, b.castleTargets(from, p)...)
	default:
		return b.patternMoves(from, p)
	}
}

// Attacks returns the squares the piece on from attacks. Pawns attack both
// forward diagonals whether or not anything stands there; kings never attack
// through castling.
func (b *Board) Attacks(from Square) []Square {
	p, ok := b.PieceAt(from)
	if !ok {
		return nil
	}

	if p.Kind != Pawn {
		return b.patternMoves(from, p)
	}

	var attacks []Square
	for _, df := range []int{-1, 1} {
		if sq, ok := from.offset(direction{file: df, rank: p.Color.forward()}); ok {
			attacks = append(attacks, sq)
		}
	}
	return attacks
}

// IsAttacked reports whether any piece of color by attacks target.
func (b *Board) IsAttacked(target Square, by Color) bool {
	for i, p := range b.squares {
		if p.Kind == NoKind || p.Color != by {
			continue
		}
		for _, sq := range b.Attacks(Square(i)) {
			if sq == target {
				return true
			}
		}
	}
	return false
}

func (b *Board) patternMoves(from Square, p Piece) []Square {
	var moves []Square

	m := movements[p.Kind]
	for _, ray := range m.rays {
		sq, ok := from.offset(ray)
		for ok {
			occupant, occupied := b.PieceAt(sq)
			if occupied && occupant.Color == p.Color {
				break
			}

			moves = append(moves, sq)
			if occupied {
				break
			}

			sq, ok = sq.offset(ray)
		}
	}

	for _, step := range m.steps {
		sq, ok := from.offset(step)
		if !ok {
			continue
		}

		if occupant, occupied := b.PieceAt(sq); occupied && occupant.Color == p.Color {
			continue
		}
		moves = append(moves, sq)
	}

	return moves
}

func (b *Board) pawnMoves(from Square, p Piece) []Square {
	var moves []Square

	forward := p.Color.forward()

	// one or two squares
	if one, ok := from.offset(direction{rank: forward}); ok && b.empty(one) {
		moves = append(moves, one)

		if from.Rank() == p.Color.pawnRank() {
			if two, ok := from.offset(direction{rank: 2 * forward}); ok && b.empty(two) {
				moves = append(moves, two)
			}
		}
	}

	// captures
	for _, df := range []int{-1, 1} {
		sq, ok := from.offset(direction{file: df, rank: forward})
		if !ok {
			continue
		}

		if occupant, occupied := b.PieceAt(sq); occupied && occupant.Color != p.Color {
			moves = append(moves, sq)
		}
	}

	return moves
}

// castleTargets returns the king's castling destinations. Only attack
// generation is consulted, never legal move generation.
func (b *Board) castleTargets(from Square, king Piece) []Square {
	rank := king.Color.backRank()
	if king.HasMoved || from.Rank() != rank || from.File() != kingHomeFile {
		return nil
	}

	var targets []Square
	enemy := king.Color.Opposite()

	for _, side := range castleSides {
		rookSq, _ := SquareAt(side.rookFrom, rank)
		rook, ok := b.PieceAt(rookSq)
		if !ok || rook.Kind != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}

		if !b.rankClearBetween(rank, kingHomeFile, side.rookFrom) {
			continue
		}

		// the king's square and the square it passes over; the destination is
		// left to the legality filter
		step := sign(side.kingTo - kingHomeFile)
		safe := true
		for file := kingHomeFile; file != side.kingTo; file += step {
			sq, _ := SquareAt(file, rank)
			if b.IsAttacked(sq, enemy) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}

		to, _ := SquareAt(side.kingTo, rank)
		targets = append(targets, to)
	}

	return targets
}

func (b *Board) rankClearBetween(rank, fileA, fileB int) bool {
	lo, hi := fileA, fileB
	if lo > hi {
		lo, hi = hi, lo
	}
	for file := lo + 1; file < hi; file++ {
		sq, _ := SquareAt(file, rank)
		if !b.empty(sq) {
			return false
		}
	}
	return true
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
