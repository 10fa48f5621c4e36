package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"painel/internal/kv"
	"painel/internal/models"
	"painel/internal/progress"
	"painel/internal/storage"
)

// setNow pins the service clock for the duration of the test.
func setNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func newMemoryStore() (storage.Adapter, *storage.KVCelebrationStore) {
	store := kv.NewMemoryStore()
	return storage.NewLocalAdapter(store), storage.NewKVCelebrationStore(store)
}

type celebrationRecorder struct {
	mu         sync.Mutex
	categories []models.Category
}

func (r *celebrationRecorder) Celebrate(_ context.Context, c models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, c)
}

func (r *celebrationRecorder) calls() []models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Category(nil), r.categories...)
}

var _ progress.Celebrator = (*celebrationRecorder)(nil)
