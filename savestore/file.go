package savestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const fileExt = ".yaml"

// FileStore keeps one <name>.yaml file per save in Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) filename(name string) string {
	return filepath.Join(s.Dir, name+fileExt)
}

func (s *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ValidName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.Dir, err)
	}

	filename := s.filename(name)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write file '%s': %w", filename, err)
	}

	log.Debug().Str("file", filename).Int("bytes", len(data)).Msg("game saved")
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := s.filename(name)
	b, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}

	return b, nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir '%s': %w", s.Dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), fileExt)
		if ValidName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
