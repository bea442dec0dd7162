package inmemory

import (
	"context"
	"sync"

	"github.com/sharetube/watchparty/internal/repository/room"
)

// repo keeps the last written snapshot in process memory. Used when no
// durable store is configured and in tests.
type repo struct {
	snapshot room.Snapshot
	writes   int
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{snapshot: make(room.Snapshot)}
}

func (r *repo) SaveSnapshot(_ context.Context, snapshot room.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = snapshot.Clone()
	r.writes++
	return nil
}

func (r *repo) GetSnapshot(_ context.Context) (room.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot.Clone(), nil
}

// Writes reports how many snapshots were saved.
func (r *repo) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.writes
}
