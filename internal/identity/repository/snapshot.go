package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tair/smart-inventory/internal/identity/domain"
	"github.com/tair/smart-inventory/pkg/storage"
)

// BlobKey is the fixed storage key for the identity aggregate snapshot. It is
// separate from the catalog blob.
const BlobKey = "identity"

// SnapshotRepository keeps the identity aggregate in memory and flushes the
// full state to the blob store on every accepted command, mirroring the
// catalog repository's single-writer policy.
type SnapshotRepository struct {
	mu    sync.RWMutex
	store *storage.BlobStore
	state domain.State
}

// NewSnapshotRepository loads the last persisted snapshot, starting empty if
// none exists.
func NewSnapshotRepository(store *storage.BlobStore) (*SnapshotRepository, error) {
	var state domain.State
	if err := store.Load(BlobKey, &state); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		return nil, fmt.Errorf("failed to load identity snapshot: %w", err)
	}
	return &SnapshotRepository{store: store, state: state}, nil
}

// Snapshot returns a copy of the current state.
func (r *SnapshotRepository) Snapshot(_ context.Context) (domain.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone(), nil
}

// Apply runs the reducer and persists the result before swapping it in.
func (r *SnapshotRepository) Apply(_ context.Context, reduce domain.Reducer) (domain.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := reduce(r.state.Clone())
	if err != nil {
		return domain.State{}, err
	}

	if err := r.store.Save(BlobKey, next); err != nil {
		return domain.State{}, fmt.Errorf("failed to persist identity snapshot: %w", err)
	}

	r.state = next
	return next.Clone(), nil
}
