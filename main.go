package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"terminal-chess/board"
	"terminal-chess/game"
	"terminal-chess/savefile"
	"terminal-chess/savestore"
)

type config struct {
	store   string
	saveDir string
	db      string
	seed    int64
	color   bool
}

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(getenv("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var cfg config
	flag.StringVar(&cfg.store, "store", getenv("CHESS_STORE", "file"), "save slot backend: file or sqlite")
	flag.StringVar(&cfg.saveDir, "save-dir", getenv("CHESS_SAVE_DIR", "saves"), "directory for the file store")
	flag.StringVar(&cfg.db, "db", getenv("CHESS_DB", "saves/chess.db"), "sqlite database path")
	flag.Int64Var(&cfg.seed, "seed", getenvInt("CHESS_SEED", 0), "seed for the computer player (0 picks one from the clock)")
	flag.BoolVar(&cfg.color, "color", getenvBool("CHESS_COLOR", true), "draw the board with ANSI colors")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("chess exited")
	}
}

func run(ctx context.Context, cfg config) error {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug().Str("store", cfg.store).Int64("seed", seed).Msg("starting")

	a := newApp(os.Stdin, os.Stdout, store, rand.New(rand.NewSource(seed)))
	a.color = cfg.color
	defer a.Close()

	err = a.menu(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(a.out)
		return nil
	}
	return err
}

func openStore(cfg config) (savestore.Store, func(), error) {
	switch cfg.store {
	case "file":
		return savestore.NewFileStore(cfg.saveDir), func() {}, nil
	case "sqlite":
		db, err := savestore.OpenSQLite(cfg.db)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("close save database")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store '%s', want file or sqlite", cfg.store)
	}
}

var errBack = errors.New("back to menu")

// menu offers new and saved games until the player quits.
func (a *app) menu(ctx context.Context) error {
	for {
		choice, err := a.ask(ctx, "(n)ew game, (l)oad game or (q)uit")
		if err != nil {
			return err
		}

		var s *game.State
		switch strings.ToLower(choice) {
		case "n", "new":
			s, err = a.newGame(ctx)
		case "l", "load":
			s, err = a.loadGame(ctx)
		case "q", "quit":
			return nil
		default:
			a.say("unknown choice '%s'", choice)
			continue
		}
		if errors.Is(err, errBack) {
			continue
		}
		if err != nil {
			return err
		}

		if err := a.play(ctx, s); err != nil {
			return err
		}
	}
}

// newGame names both players and deals out the colors at random.
func (a *app) newGame(ctx context.Context) (*game.State, error) {
	var players [2]game.Player
	for i := range players {
		name, err := a.ask(ctx, fmt.Sprintf("name of player %d", i+1))
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}

		answer, err := a.ask(ctx, fmt.Sprintf("is %s a computer? (y/n)", name))
		if err != nil {
			return nil, err
		}
		kind := game.Human
		if strings.HasPrefix(strings.ToLower(answer), "y") {
			kind = game.Automated
		}

		players[i] = game.Player{Name: name, Kind: kind}
	}

	white := a.rng.Intn(2)
	players[white].Color = board.White
	players[1-white].Color = board.Black

	for _, p := range players {
		a.say("%s plays %s", p.Name, p.Color)
	}
	log.Info().Str("white", players[white].Name).Str("black", players[1-white].Name).Msg("new game")

	return game.New(players[0], players[1])
}

func (a *app) loadGame(ctx context.Context) (*game.State, error) {
	names, err := a.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		a.say("no saved games")
		return nil, errBack
	}
	a.say("saved games: %s", strings.Join(names, ", "))

	for {
		name, err := a.ask(ctx, "name of the game to load (blank to go back)")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, errBack
		}

		data, err := a.store.Load(ctx, name)
		if errors.Is(err, savestore.ErrNotFound) || errors.Is(err, savestore.ErrInvalidName) {
			a.say("%v", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		s, err := savefile.Deserialize(data)
		if errors.Is(err, savefile.ErrLoad) {
			log.Warn().Err(err).Str("name", name).Msg("corrupt save")
			a.say("%v", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Info().Str("name", name).Msg("game loaded")
		return s, nil
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
