package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"painel/internal/models"
	"painel/internal/progress"
	"painel/internal/storage"
	"painel/internal/testutil"
)

func TestGetGoals(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds_defaults", func(t *testing.T) {
		store, _ := newMemoryStore()
		goals, err := NewGoalService(store).GetGoals(ctx)
		testutil.AssertNoError(t, err)

		if len(goals) != 9 {
			t.Fatalf("expected 9 goals, got %d", len(goals))
		}
		if goals[0].Category != models.CategoryBodyworkPaint || !goals[0].Target.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("unexpected first goal %+v", goals[0])
		}
		if _, ok := store.LoadGoals(ctx); !ok {
			t.Error("expected defaults to be persisted")
		}
	})

	t.Run("fills_missing_categories", func(t *testing.T) {
		store, _ := newMemoryStore()
		testutil.AssertNoError(t, store.SaveGoals(ctx, []models.Goal{
			{Category: models.CategoryDSP, Target: decimal.NewFromInt(1)},
			{Category: "Legacy", Target: decimal.NewFromInt(99)},
		}))

		goals, err := NewGoalService(store).GetGoals(ctx)
		testutil.AssertNoError(t, err)
		if len(goals) != 9 {
			t.Fatalf("expected 9 goals, got %d", len(goals))
		}
		for _, g := range goals {
			if g.Category == models.CategoryDSP && !g.Target.Equal(decimal.NewFromInt(1)) {
				t.Errorf("expected stored DSP target to win, got %s", g.Target)
			}
		}
	})

	t.Run("read_failure_keeps_stored_goals", func(t *testing.T) {
		kvStore := testutil.NewFailingStore()
		svc := NewGoalService(storage.NewLocalAdapter(kvStore))
		_, err := svc.UpdateGoal(ctx, models.CategoryDSP, decimal.NewFromInt(123))
		testutil.AssertNoError(t, err)

		kvStore.FailGet.Store(true)
		goals, err := svc.GetGoals(ctx)
		testutil.AssertNoError(t, err)
		if len(goals) != 9 {
			t.Errorf("expected defaults while unreadable, got %d goals", len(goals))
		}

		kvStore.FailGet.Store(false)
		goals, err = svc.GetGoals(ctx)
		testutil.AssertNoError(t, err)
		for _, g := range goals {
			if g.Category == models.CategoryDSP {
				testutil.AssertDecimal(t, g.Target, "123")
			}
		}
	})

	t.Run("seed_write_failure_still_serves_defaults", func(t *testing.T) {
		kvStore := testutil.NewFailingStore()
		kvStore.FailSet.Store(true)
		goals, err := NewGoalService(storage.NewLocalAdapter(kvStore)).GetGoals(ctx)
		testutil.AssertNoError(t, err)
		if len(goals) != 9 {
			t.Errorf("expected defaults, got %d goals", len(goals))
		}
	})
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites_target", func(t *testing.T) {
		store, _ := newMemoryStore()
		svc := NewGoalService(store)

		goal, err := svc.UpdateGoal(ctx, models.CategoryMechanics, decimal.NewFromInt(9500))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, goal.Target, "9500")

		goals, _ := svc.GetGoals(ctx)
		if len(goals) != 9 {
			t.Errorf("expected the other goals to be seeded alongside, got %d", len(goals))
		}
	})

	t.Run("leaves_celebrated_set", func(t *testing.T) {
		store, celebrations := newMemoryStore()
		svc := NewGoalService(store)
		tracker := progress.NewTracker(celebrations, &celebrationRecorder{}, nil)

		tracker.Observe(ctx, models.CategoryDSP, decimal.NewFromInt(6000), decimal.NewFromInt(6000))

		_, err := svc.UpdateGoal(ctx, models.CategoryDSP, decimal.NewFromInt(50000))
		testutil.AssertNoError(t, err)

		set, err := celebrations.LoadCelebrated(ctx)
		testutil.AssertNoError(t, err)
		if !set.Has(models.CategoryDSP) {
			t.Error("raising a target must not un-celebrate the goal")
		}
	})

	t.Run("invalid_category", func(t *testing.T) {
		store, _ := newMemoryStore()
		_, err := NewGoalService(store).UpdateGoal(ctx, "Lavagem", decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})

	t.Run("negative_target", func(t *testing.T) {
		store, _ := newMemoryStore()
		_, err := NewGoalService(store).UpdateGoal(ctx, models.CategoryDSP, decimal.NewFromInt(-1))
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("write_failure", func(t *testing.T) {
		kvStore := testutil.NewFailingStore()
		kvStore.FailSet.Store(true)
		_, err := NewGoalService(storage.NewLocalAdapter(kvStore)).UpdateGoal(ctx, models.CategoryDSP, decimal.NewFromInt(1))
		testutil.AssertAppError(t, err, "STORAGE_WRITE_FAILED")
	})
}
