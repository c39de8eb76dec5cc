package savestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/exp/slices"
)

func TestValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{name: "game1", want: true},
		{name: "Alice_vs-Bob", want: true},
		{name: strings.Repeat("a", 64), want: true},
		{name: "", want: false},
		{name: strings.Repeat("a", 65), want: false},
		{name: "../escape", want: false},
		{name: "with space", want: false},
		{name: "dot.yaml", want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidName(c.name)
			if got := err == nil; got != c.want {
				t.Errorf("want: %v got: %v (%v)", c.want, got, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("want ErrInvalidName, got %v", err)
			}
		})
	}
}

// stores returns a fresh instance of every Store implementation.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "chess.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "saves")),
		"sqlite": db,
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	for kind, store := range stores(t) {
		t.Run(kind, func(t *testing.T) {
			// empty store
			names, err := store.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(names) != 0 {
				t.Errorf("want no saves, got %v", names)
			}

			_, err = store.Load(ctx, "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("want ErrNotFound, got %v", err)
			}

			// save and load
			for _, name := range []string{"zeta", "alpha", "mid"} {
				if err := store.Save(ctx, name, []byte("doc "+name)); err != nil {
					t.Fatal(err)
				}
			}
			got, err := store.Load(ctx, "alpha")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "doc alpha" {
				t.Errorf("want: 'doc alpha' got: '%s'", got)
			}

			// overwrite
			if err := store.Save(ctx, "alpha", []byte("second")); err != nil {
				t.Fatal(err)
			}
			got, err = store.Load(ctx, "alpha")
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "second" {
				t.Errorf("want: 'second' got: '%s'", got)
			}

			names, err = store.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if want := []string{"alpha", "mid", "zeta"}; !slices.Equal(names, want) {
				t.Errorf("want: %v got: %v", want, names)
			}

			// bad names never touch storage
			if err := store.Save(ctx, "../x", []byte("x")); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Save want ErrInvalidName, got %v", err)
			}
			if _, err := store.Load(ctx, ""); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Load want ErrInvalidName, got %v", err)
			}
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	// arrange
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	// act
	if err := store.Save(ctx, "game1", []byte("players: []\n")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	// assert
	b, err := os.ReadFile(filepath.Join(dir, "game1.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "players: []\n" {
		t.Errorf("unexpected file contents '%s'", b)
	}

	names, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"game1"}; !slices.Equal(names, want) {
		t.Errorf("want: %v got: %v", want, names)
	}
}

func TestFileStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFileStore(t.TempDir())
	if err := store.Save(ctx, "game1", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
