// Package savestore keeps named save slots holding serialized games.
package savestore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrInvalidName = errors.New("invalid save name")
	ErrNotFound    = errors.New("save not found")
)

// Store holds save documents by name. Data is opaque to the store.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	// List returns the saved names in ascending order.
	List(ctx context.Context) ([]string, error)
}

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidName checks that name is usable as a file name on any platform.
func ValidName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return nil
}
