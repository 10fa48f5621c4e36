package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"painel/internal/kv"
	"painel/internal/models"
	"painel/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewTransaction builds an unsaved transaction with a fresh ID and a unique
// vehicle and plate.
func NewTransaction(category models.Category, amount int64, date time.Time) models.Transaction {
	n := nextID()
	return models.Transaction{
		ID:           uuid.New(),
		Vehicle:      fmt.Sprintf("Vehicle %d", n),
		LicensePlate: fmt.Sprintf("TST%04d", n%10000),
		Category:     category,
		Amount:       decimal.NewFromInt(amount),
		Date:         date,
	}
}

// CreateTestTransaction inserts a transaction row directly into db.
func CreateTestTransaction(t *testing.T, db *gorm.DB, category models.Category, amount int64, date time.Time) models.Transaction {
	t.Helper()

	tx := NewTransaction(category, amount, date)
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal inserts a goal row directly into db.
func CreateTestGoal(t *testing.T, db *gorm.DB, category models.Category, target int64) models.Goal {
	t.Helper()

	goal := models.Goal{Category: category, Target: decimal.NewFromInt(target)}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// ErrStoreUnavailable is returned by FailingStore.
var ErrStoreUnavailable = errors.New("store unavailable")

// FailingStore is a kv.Store whose reads and writes can be made to fail
// independently. Unless told to fail it behaves like a kv.MemoryStore.
type FailingStore struct {
	*kv.MemoryStore
	FailGet atomic.Bool
	FailSet atomic.Bool
}

// NewFailingStore creates a FailingStore that does not fail yet.
func NewFailingStore() *FailingStore {
	return &FailingStore{MemoryStore: kv.NewMemoryStore()}
}

func (s *FailingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.FailGet.Load() {
		return nil, false, ErrStoreUnavailable
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *FailingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.FailSet.Load() {
		return ErrStoreUnavailable
	}
	return s.MemoryStore.Set(ctx, key, value)
}

var _ kv.Store = (*FailingStore)(nil)
