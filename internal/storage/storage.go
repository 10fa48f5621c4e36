// Package storage persists transactions, goals and the celebrated set.
//
// Every Adapter variant shares the same contract: loads never fail (read
// errors are logged and surface as empty or absent data) while writes
// report failure as apperrors.ErrStorageWrite.
package storage

import (
	"context"
	"sort"

	"painel/internal/models"
)

// Keys used by the local variant. They match the layout written by the
// browser build of the dashboard, so an exported store can be imported as is.
const (
	KeyTransactions = "services"
	KeyGoals        = "goals"
	KeyCelebrated   = "celebratedGoals"
)

// Adapter is the persistence boundary for transactions and goals.
type Adapter interface {
	// LoadTransactions returns every transaction, newest first.
	LoadTransactions(ctx context.Context) []models.Transaction
	// SaveTransactions upserts the given transactions by ID. Transactions
	// not passed are left untouched.
	SaveTransactions(ctx context.Context, txs []models.Transaction) error
	// LoadGoals returns the stored goals. ok is false when no goals have
	// been stored yet, which callers use to seed defaults.
	// Goals come in category display order.
	LoadGoals(ctx context.Context) (goals []models.Goal, ok bool)
	// SaveGoals upserts the given goals by category.
	SaveGoals(ctx context.Context, goals []models.Goal) error
	// SeedGoals stores the given goals for categories that have none.
	// Stored goals are never overwritten.
	SeedGoals(ctx context.Context, goals []models.Goal) error
	// DeleteTransaction removes the transaction with the given ID. Deleting
	// an unknown ID is not an error.
	DeleteTransaction(ctx context.Context, id string) error
}

// CelebrationStore persists the set of categories whose goal celebration
// has already played.
type CelebrationStore interface {
	LoadCelebrated(ctx context.Context) (models.CelebratedSet, error)
	SaveCelebrated(ctx context.Context, set models.CelebratedSet) error
}

// sortGoals puts goals in category display order; rows carry no order of
// their own. Unknown labels go last.
func sortGoals(goals []models.Goal) []models.Goal {
	rank := make(map[models.Category]int)
	for i, c := range models.Categories() {
		rank[c] = i
	}
	pos := func(c models.Category) int {
		if r, ok := rank[c]; ok {
			return r
		}
		return len(rank)
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return pos(goals[i].Category) < pos(goals[j].Category)
	})
	return goals
}

// sortNewestFirst orders txs by Date descending. Ties keep their input order.
func sortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}
