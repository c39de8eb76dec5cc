// Package savefile converts a game to and from its YAML save document.
package savefile

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"terminal-chess/board"
	"terminal-chess/game"
)

var ErrLoad = errors.New("cannot load saved game")

type document struct {
	Players            []player `yaml:"players"`
	Board              *pieces  `yaml:"board"`
	CurrentPlayerIndex *int     `yaml:"current_player_index"`
}

type player struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Kind  string `yaml:"kind"`
}

type pieces struct {
	Pieces []piece `yaml:"pieces"`
}

type piece struct {
	Kind                string `yaml:"kind"`
	Color               string `yaml:"color"`
	Location            string `yaml:"location"`
	HasMoved            *bool  `yaml:"has_moved"`
	EnPassantVulnerable *bool  `yaml:"en_passant_vulnerable"`
}

// Serialize writes the players, every piece in square order and the index of
// the player to move. A resignation is not part of the document.
func Serialize(s *game.State) ([]byte, error) {
	doc := document{
		Board:              &pieces{},
		CurrentPlayerIndex: &s.Current,
	}

	for _, p := range s.Players {
		doc.Players = append(doc.Players, player{
			Name:  p.Name,
			Color: p.Color.String(),
			Kind:  p.Kind.String(),
		})
	}

	for _, p := range s.Board.Pieces() {
		hasMoved, vulnerable := p.HasMoved, p.EnPassantVulnerable
		doc.Board.Pieces = append(doc.Board.Pieces, piece{
			Kind:                p.Kind.String(),
			Color:               p.Color.String(),
			Location:            p.Square.String(),
			HasMoved:            &hasMoved,
			EnPassantVulnerable: &vulnerable,
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode game: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode game: %v", err)
	}

	return buf.Bytes(), nil
}

// Deserialize rebuilds a game from a save document. Any structural problem is
// reported as ErrLoad.
func Deserialize(data []byte) (*game.State, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	players, err := doc.players()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	b, err := doc.board()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	if doc.CurrentPlayerIndex == nil {
		return nil, fmt.Errorf("%w: missing current_player_index", ErrLoad)
	}
	current := *doc.CurrentPlayerIndex
	if current != 0 && current != 1 {
		return nil, fmt.Errorf("%w: current_player_index %d", ErrLoad, current)
	}
	if err := checkEnPassant(b, players[current].Color); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	s, err := game.Restore(players, b, current)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return s, nil
}

func (doc *document) players() ([2]game.Player, error) {
	var players [2]game.Player

	if len(doc.Players) != 2 {
		return players, fmt.Errorf("want 2 players, got %d", len(doc.Players))
	}

	for i, p := range doc.Players {
		if p.Name == "" {
			return players, fmt.Errorf("player %d: missing name", i)
		}
		color, ok := board.ParseColor(p.Color)
		if !ok {
			return players, fmt.Errorf("player %d: invalid color '%s'", i, p.Color)
		}
		kind, ok := game.ParsePlayerKind(p.Kind)
		if !ok {
			return players, fmt.Errorf("player %d: invalid kind '%s'", i, p.Kind)
		}
		players[i] = game.Player{Name: p.Name, Color: color, Kind: kind}
	}

	if players[0].Color == players[1].Color {
		return players, fmt.Errorf("both players are %s", players[0].Color)
	}

	return players, nil
}

func (doc *document) board() (*board.Board, error) {
	if doc.Board == nil {
		return nil, errors.New("missing board")
	}

	b := board.New()
	for i, p := range doc.Board.Pieces {
		kind, ok := board.ParseKind(p.Kind)
		if !ok || len(p.Kind) == 1 {
			return nil, fmt.Errorf("piece %d: invalid kind '%s'", i, p.Kind)
		}
		color, ok := board.ParseColor(p.Color)
		if !ok {
			return nil, fmt.Errorf("piece %d: invalid color '%s'", i, p.Color)
		}
		sq, err := board.ParseSquare(p.Location)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %v", i, err)
		}
		if p.HasMoved == nil {
			return nil, fmt.Errorf("piece %d: missing has_moved", i)
		}
		if p.EnPassantVulnerable == nil {
			return nil, fmt.Errorf("piece %d: missing en_passant_vulnerable", i)
		}
		if _, taken := b.PieceAt(sq); taken {
			return nil, fmt.Errorf("piece %d: square %s is already occupied", i, sq)
		}

		if kind == board.Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			return nil, fmt.Errorf("piece %d: pawn on %s", i, sq)
		}
		if *p.EnPassantVulnerable && !enPassantRank(kind, color, sq) {
			return nil, fmt.Errorf("piece %d: %s %s on %s cannot be captured en passant", i, color, kind, sq)
		}

		b.Place(sq, board.Piece{
			Kind:                kind,
			Color:               color,
			HasMoved:            *p.HasMoved,
			EnPassantVulnerable: *p.EnPassantVulnerable,
		})
	}

	return b, nil
}

// enPassantRank reports whether a piece could have just made a pawn's
// two-square advance to sq.
func enPassantRank(kind board.Kind, color board.Color, sq board.Square) bool {
	if kind != board.Pawn {
		return false
	}
	if color == board.White {
		return sq.Rank() == 3
	}
	return sq.Rank() == 4
}

// checkEnPassant allows at most one vulnerable pawn, belonging to the side
// that just moved and marked as moved.
func checkEnPassant(b *board.Board, turn board.Color) error {
	var found *board.Placed
	for _, p := range b.Pieces() {
		if !p.EnPassantVulnerable {
			continue
		}
		if found != nil {
			return fmt.Errorf("pawns on %s and %s are both vulnerable en passant", found.Square, p.Square)
		}
		if p.Color == turn {
			return fmt.Errorf("%s pawn on %s is vulnerable en passant on its own turn", p.Color, p.Square)
		}
		if !p.HasMoved {
			return fmt.Errorf("pawn on %s is vulnerable en passant but has not moved", p.Square)
		}
		found = &p
	}
	return nil
}
