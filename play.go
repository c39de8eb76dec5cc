package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"terminal-chess/board"
	"terminal-chess/game"
	"terminal-chess/savefile"
	"terminal-chess/savestore"
)

type app struct {
	// lines is closed when the input ends or the app is closed.
	lines <-chan string
	quit  chan struct{}
	out   io.Writer

	store savestore.Store
	rng   *rand.Rand
	color bool
}

func newApp(in io.Reader, out io.Writer, store savestore.Store, rng *rand.Rand) *app {
	lines := make(chan string)
	quit := make(chan struct{})
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-quit:
				return
			}
		}
	}()

	return &app{lines: lines, quit: quit, out: out, store: store, rng: rng}
}

// Close stops the input reader. A reader blocked in a read exits once that
// read returns.
func (a *app) Close() {
	close(a.quit)
}

// ask prompts for one line of input. It returns io.EOF once the input is
// exhausted.
func (a *app) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (a *app) say(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// play runs the turn loop until the game ends.
func (a *app) play(ctx context.Context, s *game.State) error {
	for {
		status, err := s.Status()
		if err != nil {
			return err
		}
		if status.Over() {
			renderBoard(a.out, &s.Board, nil, a.color)
			a.say("%s", status)
			if status.Kind == game.Checkmate || status.Kind == game.Resigned {
				a.say("congratulations %s!", s.PlayerFor(status.Color).Name)
			}
			log.Info().Stringer("status", status).Msg("game over")
			return nil
		}

		player := s.CurrentPlayer()
		if player.Kind == game.Automated {
			m, err := pickMove(a.rng, s)
			if err != nil {
				return err
			}
			if err := s.ApplyMove(m.From, m.To, m.Promotion); err != nil {
				return err
			}
			a.say("%s plays %s", player.Name, m)
			continue
		}

		if err := a.humanTurn(ctx, s, status); err != nil {
			return err
		}
	}
}

// humanTurn prompts until the player to move has made a move, saved and
// moved, or resigned.
func (a *app) humanTurn(ctx context.Context, s *game.State, status game.Status) error {
	player := s.CurrentPlayer()

	renderBoard(a.out, &s.Board, nil, a.color)
	if status.Kind == game.Check {
		a.say("%s", status)
	}

	for {
		input, err := a.ask(ctx, fmt.Sprintf("%s (%s), select a piece, or type 'save' or 'resign'", player.Name, player.Color))
		if err != nil {
			return err
		}

		switch strings.ToLower(input) {
		case "resign":
			s.Resign(player.Color)
			return nil
		case "save":
			if err := a.save(ctx, s); err != nil {
				return err
			}
			continue
		}

		from, err := board.ParseSquare(strings.ToLower(input))
		if err != nil {
			a.say("%v", err)
			continue
		}

		moves, err := s.LegalMoves(from)
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			a.say("no legal moves from %s", from)
			continue
		}

		renderBoard(a.out, &s.Board, moves, a.color)

		input, err = a.ask(ctx, "select a destination (or 'back')")
		if err != nil {
			return err
		}
		if strings.ToLower(input) == "back" {
			continue
		}

		to, err := board.ParseSquare(strings.ToLower(input))
		if err != nil {
			a.say("%v", err)
			continue
		}

		promotion := board.NoKind
		if slices.Contains(moves, to) && s.NeedsPromotion(from, to) {
			promotion, err = a.askPromotion(ctx)
			if err != nil {
				return err
			}
		}

		err = s.ApplyMove(from, to, promotion)
		if errors.Is(err, game.ErrInvalidMove) || errors.Is(err, game.ErrInvalidPromotionChoice) {
			a.say("%v", err)
			continue
		}
		return err
	}
}

func (a *app) askPromotion(ctx context.Context) (board.Kind, error) {
	for {
		input, err := a.ask(ctx, "promote to (queen, rook, bishop, knight)")
		if err != nil {
			return board.NoKind, err
		}

		kind, ok := board.ParseKind(strings.ToLower(input))
		if ok && kind.CanPromoteTo() {
			return kind, nil
		}
		a.say("cannot promote to '%s'", input)
	}
}

// save writes the game to a named slot. Bad names are reported and the turn
// continues.
func (a *app) save(ctx context.Context, s *game.State) error {
	name, err := a.ask(ctx, "save as")
	if err != nil {
		return err
	}
	if err := savestore.ValidName(name); err != nil {
		a.say("%v (use letters, digits, '-' and '_')", err)
		return nil
	}

	data, err := savefile.Serialize(s)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, name, data); err != nil {
		return err
	}

	a.say("saved as '%s'", name)
	log.Info().Str("name", name).Msg("game saved")
	return nil
}
