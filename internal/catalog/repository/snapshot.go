package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tair/smart-inventory/internal/catalog/domain"
	"github.com/tair/smart-inventory/pkg/storage"
)

// BlobKey is the fixed storage key for the catalog aggregate snapshot.
const BlobKey = "catalog"

// SnapshotRepository keeps the catalog aggregate in memory and flushes the
// full aggregate to the blob store on every successful mutation. A single
// mutex serializes read-modify-write, so commands execute one at a time even
// under concurrent HTTP requests; the restore-then-deduct reconciliation is
// not safe under interleaving.
type SnapshotRepository struct {
	mu    sync.RWMutex
	store *storage.BlobStore
	state domain.Aggregate
}

// NewSnapshotRepository loads the last persisted snapshot, starting from an
// empty aggregate if none exists.
func NewSnapshotRepository(store *storage.BlobStore) (*SnapshotRepository, error) {
	var state domain.Aggregate
	if err := store.Load(BlobKey, &state); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}
	return &SnapshotRepository{store: store, state: state}, nil
}

// Snapshot returns a copy of the current aggregate.
func (r *SnapshotRepository) Snapshot(_ context.Context) (domain.Aggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone(), nil
}

// Apply runs the reducer against the current aggregate and persists the
// result before swapping it in. If the reducer fails or the flush fails, the
// in-memory state is left untouched.
func (r *SnapshotRepository) Apply(_ context.Context, reduce domain.Reducer) (domain.Aggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := reduce(r.state.Clone())
	if err != nil {
		return domain.Aggregate{}, err
	}

	if err := r.store.Save(BlobKey, next); err != nil {
		return domain.Aggregate{}, fmt.Errorf("failed to persist catalog snapshot: %w", err)
	}

	r.state = next
	return next.Clone(), nil
}
