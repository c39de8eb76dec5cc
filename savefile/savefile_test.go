package savefile

import (
	"errors"
	"strings"
	"testing"

	"terminal-chess/board"
	"terminal-chess/game"
)

func sq(t testing.TB, s string) board.Square {
	t.Helper()
	v, err := board.ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func newGame(t testing.TB, moves ...string) *game.State {
	t.Helper()
	s, err := game.New(
		game.Player{Name: "Alice", Color: board.White, Kind: game.Human},
		game.Player{Name: "Computer", Color: board.Black, Kind: game.Automated},
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range moves {
		if err := s.ApplyMove(sq(t, m[:2]), sq(t, m[2:4]), board.NoKind); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		moves []string
	}{
		{name: "start"},
		{name: "pawn just advanced two", moves: []string{"e2e4"}},
		{name: "after castling", moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1"}},
		{name: "capture", moves: []string{"e2e4", "d7d5", "e4d5"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// arrange
			want := newGame(t, c.moves...)

			// act
			data, err := Serialize(want)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Deserialize(data)

			// assert
			if err != nil {
				t.Fatalf("%v\n%s", err, data)
			}
			if got.Players != want.Players {
				t.Errorf("players want: %v got: %v", want.Players, got.Players)
			}
			if got.Current != want.Current {
				t.Errorf("current want: %d got: %d", want.Current, got.Current)
			}
			if got.Board != want.Board {
				t.Errorf("board want:\n%s\ngot:\n%s", want.Board.String(), got.Board.String())
			}
		})
	}
}

func TestLoadedGameContinues(t *testing.T) {
	// arrange
	saved := newGame(t, "e2e4", "a7a6", "e4e5", "d7d5")
	data, err := Serialize(saved)
	if err != nil {
		t.Fatal(err)
	}

	// act
	loaded, err := Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}

	// assert
	want, err := saved.LegalMoves(sq(t, "e5"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.LegalMoves(sq(t, "e5"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) || len(got) != 2 {
		t.Fatalf("e5 moves want: %v got: %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("e5 moves want: %v got: %v", want, got)
		}
	}

	if err := loaded.ApplyMove(sq(t, "e5"), sq(t, "d6"), board.NoKind); err != nil {
		t.Fatalf("en passant after load: %v", err)
	}
	if _, ok := loaded.Board.PieceAt(sq(t, "d5")); ok {
		t.Errorf("d5 pawn should have been captured")
	}
}

func TestSerializeDocument(t *testing.T) {
	s := newGame(t, "e2e4")

	data, err := Serialize(s)
	if err != nil {
		t.Fatal(err)
	}

	doc := string(data)
	for _, want := range []string{
		"name: Alice",
		"color: white",
		"kind: human",
		"kind: automated",
		"location: e4",
		"en_passant_vulnerable: true",
		"current_player_index: 1",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "location: e2") {
		t.Errorf("empty squares should not be written:\n%s", doc)
	}
}

const validDoc = `players:
  - name: Alice
    color: white
    kind: human
  - name: Computer
    color: black
    kind: automated
board:
  pieces:
    - kind: king
      color: white
      location: e1
      has_moved: false
      en_passant_vulnerable: false
    - kind: pawn
      color: white
      location: e4
      has_moved: true
      en_passant_vulnerable: true
    - kind: king
      color: black
      location: e8
      has_moved: false
      en_passant_vulnerable: false
current_player_index: 1
`

func TestDeserializeValidDocument(t *testing.T) {
	s, err := Deserialize([]byte(validDoc))
	if err != nil {
		t.Fatal(err)
	}

	if s.Turn() != board.Black {
		t.Errorf("want black to move, got %s", s.Turn())
	}
	p, ok := s.Board.PieceAt(sq(t, "e4"))
	if !ok || p.Kind != board.Pawn || !p.HasMoved || !p.EnPassantVulnerable {
		t.Errorf("e4 want moved vulnerable pawn, got %+v", p)
	}
	if len(s.Board.Pieces()) != 3 {
		t.Errorf("want 3 pieces, got %d", len(s.Board.Pieces()))
	}
}

func TestDeserializeErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "not yaml", doc: "players: [\n"},
		{name: "unknown field", doc: strings.Replace(validDoc, "current_player_index: 1", "current_player_index: 1\nclock: 10", 1)},
		{name: "missing index", doc: strings.Replace(validDoc, "current_player_index: 1\n", "", 1)},
		{name: "index out of range", doc: strings.Replace(validDoc, "current_player_index: 1", "current_player_index: 2", 1)},
		{name: "missing board", doc: validDoc[:strings.Index(validDoc, "board:")] + "current_player_index: 0\n"},
		{name: "one player", doc: strings.Replace(validDoc, "  - name: Computer\n    color: black\n    kind: automated\n", "", 1)},
		{name: "same colors", doc: strings.Replace(validDoc, "color: black\n    kind: automated", "color: white\n    kind: automated", 1)},
		{name: "bad player kind", doc: strings.Replace(validDoc, "kind: automated", "kind: robot", 1)},
		{name: "missing name", doc: strings.Replace(validDoc, "name: Alice", "name: \"\"", 1)},
		{name: "bad piece kind", doc: strings.Replace(validDoc, "kind: pawn", "kind: dragon", 1)},
		{name: "piece letter", doc: strings.Replace(validDoc, "kind: pawn", "kind: p", 1)},
		{name: "bad piece color", doc: strings.Replace(validDoc, "color: white\n      location: e4", "color: red\n      location: e4", 1)},
		{name: "bad location", doc: strings.Replace(validDoc, "location: e4", "location: e9", 1)},
		{name: "duplicate square", doc: strings.Replace(validDoc, "location: e4", "location: e1", 1)},
		{name: "missing has_moved", doc: strings.Replace(validDoc, "      location: e4\n      has_moved: true\n", "      location: e4\n", 1)},
		{name: "missing en_passant_vulnerable", doc: strings.Replace(validDoc, "has_moved: true\n      en_passant_vulnerable: true\n", "has_moved: true\n", 1)},
		{name: "pawn on last rank", doc: strings.Replace(validDoc, "location: e4\n      has_moved: true\n      en_passant_vulnerable: true", "location: a8\n      has_moved: true\n      en_passant_vulnerable: false", 1)},
		{name: "vulnerable pawn on wrong rank", doc: strings.Replace(validDoc, "location: e4", "location: e3", 1)},
		{name: "vulnerable pawn of the side to move", doc: strings.Replace(validDoc, "current_player_index: 1", "current_player_index: 0", 1)},
		{name: "vulnerable pawn that never moved", doc: strings.Replace(validDoc, "location: e4\n      has_moved: true", "location: e4\n      has_moved: false", 1)},
		{name: "two vulnerable pawns", doc: strings.Replace(validDoc, "    - kind: king\n      color: black", "    - kind: pawn\n      color: white\n      location: d4\n      has_moved: true\n      en_passant_vulnerable: true\n    - kind: king\n      color: black", 1)},
		{name: "no black king", doc: strings.Replace(validDoc, "kind: king\n      color: black", "kind: queen\n      color: black", 1)},
		{name: "two white kings", doc: strings.Replace(validDoc, "kind: king\n      color: black", "kind: king\n      color: white", 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Deserialize([]byte(c.doc))
			if !errors.Is(err, ErrLoad) {
				t.Errorf("want ErrLoad, got %v", err)
			}
		})
	}
}
