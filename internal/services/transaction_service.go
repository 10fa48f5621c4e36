package services

import (
	"context"
	"strings"

	apperrors "painel/internal/errors"
	"painel/internal/models"
	"painel/internal/pagination"
	"painel/internal/storage"
	"painel/internal/uuid"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	store storage.Adapter
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store storage.Adapter) TransactionServicer {
	return &transactionService{store: store}
}

// CreateTransaction validates in, stamps it with a new ID and the current
// time, and saves it.
func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	tx := models.Transaction{
		ID:           uuid.New(),
		Vehicle:      in.Vehicle,
		LicensePlate: in.LicensePlate,
		Category:     in.Category,
		Amount:       in.Amount,
		Date:         now(),
	}
	if err := s.store.SaveTransactions(ctx, []models.Transaction{tx}); err != nil {
		return nil, err
	}

	return s.reloaded(ctx, tx), nil
}

// ListTransactions returns a page of transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	resp := pagination.Paginate(s.store.LoadTransactions(ctx), page)
	return &resp, nil
}

// GetTransactionByID returns the transaction with the given ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	for _, tx := range s.store.LoadTransactions(ctx) {
		if tx.ID == id {
			return &tx, nil
		}
	}
	return nil, apperrors.ErrTransactionNotFound
}

// UpdateTransaction replaces the editable fields of a transaction. The ID
// and date are kept.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	tx, err := s.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx.Vehicle = in.Vehicle
	tx.LicensePlate = in.LicensePlate
	tx.Category = in.Category
	tx.Amount = in.Amount

	if err := s.store.SaveTransactions(ctx, []models.Transaction{*tx}); err != nil {
		return nil, err
	}

	return s.reloaded(ctx, *tx), nil
}

// DeleteTransaction removes a transaction. Unknown IDs are ignored.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.store.DeleteTransaction(ctx, id)
}

// reloaded returns tx as read back from the store, or tx itself when the
// reload does not contain it.
func (s *transactionService) reloaded(ctx context.Context, tx models.Transaction) *models.Transaction {
	for _, stored := range s.store.LoadTransactions(ctx) {
		if stored.ID == tx.ID {
			return &stored
		}
	}
	return &tx
}

func normalizeInput(in TransactionInput) (TransactionInput, error) {
	in.Vehicle = strings.TrimSpace(in.Vehicle)
	in.LicensePlate = strings.ToUpper(strings.TrimSpace(in.LicensePlate))

	if in.Vehicle == "" {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "vehicle is required")
	}
	if in.LicensePlate == "" {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "license plate is required")
	}
	if !in.Category.IsValid() {
		return in, apperrors.ErrInvalidCategory
	}
	if !models.ValidAmount(in.Amount) {
		return in, apperrors.ErrInvalidAmount
	}
	return in, nil
}
