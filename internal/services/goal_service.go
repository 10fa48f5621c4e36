package services

import (
	"context"

	"github.com/shopspring/decimal"

	apperrors "painel/internal/errors"
	"painel/internal/logger"
	"painel/internal/models"
	"painel/internal/storage"
)

// goalService handles goal-related business logic.
type goalService struct {
	store storage.Adapter
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(store storage.Adapter) GoalServicer {
	return &goalService{store: store}
}

// GetGoals returns the stored goals, completed with defaults for any
// category that has none.
func (s *goalService) GetGoals(ctx context.Context) ([]models.Goal, error) {
	if stored, ok := s.store.LoadGoals(ctx); ok {
		return completeGoals(stored), nil
	}

	// Absent may also mean unreadable, so seeding must not overwrite.
	if err := s.store.SeedGoals(ctx, models.DefaultGoals()); err != nil {
		// Seeding is retried on the next read.
		logger.Get().Warnw("failed to seed default goals", "error", err)
		return models.DefaultGoals(), nil
	}
	if stored, ok := s.store.LoadGoals(ctx); ok {
		return completeGoals(stored), nil
	}
	return models.DefaultGoals(), nil
}

// UpdateGoal overwrites the target of category.
func (s *goalService) UpdateGoal(ctx context.Context, category models.Category, target decimal.Decimal) (*models.Goal, error) {
	if !category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if !models.ValidAmount(target) {
		return nil, apperrors.ErrInvalidAmount
	}

	goal := models.Goal{Category: category, Target: target}
	if err := s.store.SaveGoals(ctx, []models.Goal{goal}); err != nil {
		return nil, err
	}

	goals, err := s.GetGoals(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.Category == category {
			return &g, nil
		}
	}
	return &goal, nil
}

// completeGoals returns one goal per known category in display order,
// filling gaps with the default target. Unknown stored categories are
// dropped.
func completeGoals(stored []models.Goal) []models.Goal {
	byCategory := make(map[models.Category]models.Goal, len(stored))
	for _, g := range stored {
		byCategory[g.Category] = g
	}

	out := make([]models.Goal, 0, len(models.Categories()))
	for _, def := range models.DefaultGoals() {
		if g, ok := byCategory[def.Category]; ok {
			out = append(out, g)
			continue
		}
		out = append(out, def)
	}
	return out
}
