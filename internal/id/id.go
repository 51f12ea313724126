package id

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Resolve failures.
var (
	ErrNoMatch   = errors.New("no matching ID")
	ErrAmbiguous = errors.New("ambiguous ID prefix")
)

// ShortLen is the number of characters Short keeps.
const ShortLen = 8

// New returns a fresh random transaction ID (UUIDv4).
func New() string {
	return uuid.NewString()
}

// Short returns the leading ShortLen characters of id for display.
func Short(id string) string {
	if len(id) <= ShortLen {
		return id
	}
	return id[:ShortLen]
}

// Resolve finds the single ID in ids equal to ref or, failing that, starting
// with ref. It fails with ErrNoMatch or ErrAmbiguous.
func Resolve(ref string, ids []string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty ID: %w", ErrNoMatch)
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: %w", ref, ErrNoMatch)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d IDs: %w", ref, len(matches), ErrAmbiguous)
	}
}
