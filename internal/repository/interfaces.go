package repository

import (
	"context"
	"errors"
)

// ErrStoreUnavailable indicates the backing store could not be reached or
// failed to execute a command. Callers are expected to degrade gracefully
// (memory-only operation) rather than treat this as fatal.
var ErrStoreUnavailable = errors.New("store unavailable")

// WishlistStore persists the wishlist as an ordered sequence of
// self-contained encoded record strings under a single key.
//
// Load returns an empty sequence when no prior save exists (first run);
// that is not an error. Save overwrites the whole persisted list atomically
// from the caller's perspective; there are no partial-list updates.
type WishlistStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, records []string) error
}
