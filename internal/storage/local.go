package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apperrors "painel/internal/errors"
	"painel/internal/kv"
	"painel/internal/logger"
	"painel/internal/models"
)

// LocalAdapter stores each collection as one JSON array in a kv.Store.
// Writes are read-modify-write cycles serialised by mu.
type LocalAdapter struct {
	mu    sync.Mutex
	store kv.Store
}

// NewLocalAdapter creates an Adapter over store.
func NewLocalAdapter(store kv.Store) *LocalAdapter {
	return &LocalAdapter{store: store}
}

var _ Adapter = (*LocalAdapter)(nil)

func (a *LocalAdapter) LoadTransactions(ctx context.Context) []models.Transaction {
	txs, err := a.readTransactions(ctx)
	if err != nil {
		logger.Get().Errorw("failed to load transactions", "backend", "local", "error", err)
		return []models.Transaction{}
	}
	return txs
}

func (a *LocalAdapter) SaveTransactions(ctx context.Context, txs []models.Transaction) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.readTransactionsForWrite(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}

	index := make(map[string]int, len(current))
	for i, tx := range current {
		index[tx.ID] = i
	}
	for _, tx := range txs {
		if i, ok := index[tx.ID]; ok {
			// The creation timestamp is immutable.
			tx.Date = current[i].Date
			current[i] = tx
			continue
		}
		index[tx.ID] = len(current)
		current = append(current, tx)
	}
	sortNewestFirst(current)

	return a.write(ctx, KeyTransactions, current)
}

func (a *LocalAdapter) DeleteTransaction(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, err := a.readTransactionsForWrite(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}

	kept := current[:0]
	for _, tx := range current {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(current) {
		return nil
	}
	return a.write(ctx, KeyTransactions, kept)
}

func (a *LocalAdapter) LoadGoals(ctx context.Context) ([]models.Goal, bool) {
	raw, ok, err := a.store.Get(ctx, KeyGoals)
	if err != nil {
		logger.Get().Errorw("failed to load goals", "backend", "local", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var goals []models.Goal
	if err := json.Unmarshal(raw, &goals); err != nil {
		logger.Get().Warnw("discarding malformed goals", "backend", "local", "error", err)
		return nil, false
	}
	if goals == nil {
		return nil, false
	}
	return sortGoals(goals), true
}

func (a *LocalAdapter) SaveGoals(ctx context.Context, goals []models.Goal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.mergeGoals(ctx, goals, true)
}

func (a *LocalAdapter) SeedGoals(ctx context.Context, goals []models.Goal) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.mergeGoals(ctx, goals, false)
}

// mergeGoals adds goals for new categories and, when overwrite is set,
// replaces the stored goal of existing ones. Callers hold mu.
func (a *LocalAdapter) mergeGoals(ctx context.Context, goals []models.Goal, overwrite bool) error {
	current, err := a.readGoalsForWrite(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}

	index := make(map[models.Category]int, len(current))
	for i, g := range current {
		index[g.Category] = i
	}
	changed := false
	for _, g := range goals {
		if i, ok := index[g.Category]; ok {
			if overwrite {
				current[i] = g
				changed = true
			}
			continue
		}
		index[g.Category] = len(current)
		current = append(current, g)
		changed = true
	}
	if !changed {
		return nil
	}

	return a.write(ctx, KeyGoals, sortGoals(current))
}

func (a *LocalAdapter) readTransactions(ctx context.Context) ([]models.Transaction, error) {
	raw, ok, err := a.store.Get(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Transaction{}, nil
	}

	var txs []models.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("malformed %q value: %w", KeyTransactions, err)
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	sortNewestFirst(txs)
	return txs, nil
}

// readTransactionsForWrite is readTransactions for the write path: a store
// that cannot be read fails the write, while malformed content is replaced.
func (a *LocalAdapter) readTransactionsForWrite(ctx context.Context) ([]models.Transaction, error) {
	raw, ok, err := a.store.Get(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Transaction{}, nil
	}

	var txs []models.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		logger.Get().Warnw("overwriting malformed transactions", "backend", "local", "error", err)
		return []models.Transaction{}, nil
	}
	return txs, nil
}

// readGoalsForWrite reads the stored goals for the write path: a store that
// cannot be read fails the write, while malformed content is replaced.
func (a *LocalAdapter) readGoalsForWrite(ctx context.Context) ([]models.Goal, error) {
	raw, ok, err := a.store.Get(ctx, KeyGoals)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Goal{}, nil
	}

	var goals []models.Goal
	if err := json.Unmarshal(raw, &goals); err != nil {
		logger.Get().Warnw("overwriting malformed goals", "backend", "local", "error", err)
		return []models.Goal{}, nil
	}
	return goals, nil
}

func (a *LocalAdapter) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	if err := a.store.Set(ctx, key, raw); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	return nil
}

// KVCelebrationStore keeps the celebrated set under KeyCelebrated.
type KVCelebrationStore struct {
	store kv.Store
}

// NewKVCelebrationStore creates a CelebrationStore over store.
func NewKVCelebrationStore(store kv.Store) *KVCelebrationStore {
	return &KVCelebrationStore{store: store}
}

var _ CelebrationStore = (*KVCelebrationStore)(nil)

// LoadCelebrated returns the persisted set, or an empty set when nothing
// has been celebrated yet.
func (s *KVCelebrationStore) LoadCelebrated(ctx context.Context) (models.CelebratedSet, error) {
	raw, ok, err := s.store.Get(ctx, KeyCelebrated)
	if err != nil {
		return models.NewCelebratedSet(), err
	}
	if !ok {
		return models.NewCelebratedSet(), nil
	}

	var set models.CelebratedSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return models.NewCelebratedSet(), fmt.Errorf("malformed %q value: %w", KeyCelebrated, err)
	}
	if set == nil {
		set = models.NewCelebratedSet()
	}
	return set, nil
}

func (s *KVCelebrationStore) SaveCelebrated(ctx context.Context, set models.CelebratedSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	if err := s.store.Set(ctx, KeyCelebrated, raw); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	return nil
}
