package savestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `CREATE TABLE IF NOT EXISTS saves (
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLiteStore keeps saves as rows of a single table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its saves table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}

	log.Debug().Str("path", path).Msg("opened save database")
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ValidName(name); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save '%s': %w", name, err)
	}

	log.Debug().Str("name", name).Int("bytes", len(data)).Msg("game saved")
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load '%s': %w", name, err)
	}

	return data, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM saves ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
