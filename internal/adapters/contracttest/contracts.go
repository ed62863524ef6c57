package contracttest

import (
	"context"
	"errors"
	"testing"

	"github.com/Mergington-High/activity-signup-client/internal/ports/out/tokenstore"
)

type CleanupFunc = func()

type TokenStoreFactory func(t *testing.T) (tokenstore.Store, CleanupFunc)

// RunTokenStore exercises the tokenstore.Store contract against any adapter.
func RunTokenStore(t *testing.T, newStore TokenStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Empty store.
	if _, err := store.Load(ctx); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("Load on empty store: err=%v, want ErrNotFound", err)
	}

	// Clearing an empty store is a no-op.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}

	// Save then load.
	if err := store.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || got != "tok-1" {
		t.Fatalf("Load: got=%q err=%v, want tok-1", got, err)
	}

	// Save replaces the previous token.
	if err := store.Save(ctx, "tok-2"); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil || got != "tok-2" {
		t.Fatalf("Load after overwrite: got=%q err=%v, want tok-2", got, err)
	}

	// Clear removes the token.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("Load after clear: err=%v, want ErrNotFound", err)
	}
}
