/* store_interface.go
 * Contains the Interface for the preference store, used for dependency injection and testing
 */

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored for the key
var ErrNotFound = errors.New("preference not found")

// Key identifies a stored value. TournamentID is 0 for values that are not scoped to a tournament
// (the auth token and admin-mode flag)
type Key struct {
	Namespace    string
	TournamentID int
	Name         string
}

// Interface defines the methods that every preference backend implements.
// This allows for mocking in tests.
type Interface interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error
	Close(ctx context.Context) error
}

// Ensure every backend implements Interface
var (
	_ Interface = (*MongoStore)(nil)
	_ Interface = (*PostgresStore)(nil)
	_ Interface = (*MemoryStore)(nil)
)
