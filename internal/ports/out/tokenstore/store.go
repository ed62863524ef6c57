package tokenstore

import "context"

// Store persists the bearer token between client runs. It is the analog of
// the single localStorage key the browser UI used: at most one token is held
// at a time, and Save replaces whatever was there.
type Store interface {
	// Load returns the persisted token. ErrNotFound when nothing is stored.
	Load(ctx context.Context) (string, error)

	Save(ctx context.Context, token string) error

	// Clear removes the persisted token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
