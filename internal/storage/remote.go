package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "painel/internal/errors"
	"painel/internal/logger"
	"painel/internal/models"
	"painel/internal/uuid"
)

// RemoteAdapter stores transactions and goals in the relational `services`
// and `goals` tables.
type RemoteAdapter struct {
	db *gorm.DB
}

// NewRemoteAdapter creates an Adapter over db. The schema is expected to be
// in place (see cmd/migrate).
func NewRemoteAdapter(db *gorm.DB) *RemoteAdapter {
	return &RemoteAdapter{db: db}
}

var _ Adapter = (*RemoteAdapter)(nil)

func (a *RemoteAdapter) LoadTransactions(ctx context.Context) []models.Transaction {
	var txs []models.Transaction
	if err := a.db.WithContext(ctx).Order("date DESC").Find(&txs).Error; err != nil {
		logger.Get().Errorw("failed to load transactions", "backend", "remote", "error", err)
		return []models.Transaction{}
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs
}

func (a *RemoteAdapter) SaveTransactions(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vehicle", "license_plate", "type", "value"}),
	}).Create(&txs).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	return nil
}

func (a *RemoteAdapter) DeleteTransaction(ctx context.Context, id string) error {
	// The id column is a UUID; anything else cannot match a row.
	if !uuid.IsValid(id) {
		return nil
	}
	if err := a.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	return nil
}

func (a *RemoteAdapter) LoadGoals(ctx context.Context) ([]models.Goal, bool) {
	var goals []models.Goal
	if err := a.db.WithContext(ctx).Find(&goals).Error; err != nil {
		logger.Get().Errorw("failed to load goals", "backend", "remote", "error", err)
		return nil, false
	}
	if len(goals) == 0 {
		return nil, false
	}
	return sortGoals(goals), true
}

func (a *RemoteAdapter) SaveGoals(ctx context.Context, goals []models.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&goals).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	return nil
}

func (a *RemoteAdapter) SeedGoals(ctx context.Context, goals []models.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoNothing: true,
	}).Create(&goals).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageWrite, err)
	}
	return nil
}
