package testutil_test

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "painel/internal/errors"
	"painel/internal/models"
	"painel/internal/testutil"
)

func TestNewTestDB(t *testing.T) {
	db := testutil.NewTestDB(t)

	var count int64
	for _, table := range testutil.Tables {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestNewTestDB_Isolated(t *testing.T) {
	first := testutil.NewTestDB(t)
	second := testutil.NewTestDB(t)

	testutil.CreateTestGoal(t, first, models.CategoryDSP, 100)

	var count int64
	second.Model(&models.Goal{}).Count(&count)
	if count != 0 {
		t.Errorf("expected isolated databases, second has %d goals", count)
	}
}

func TestCloseDB(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CloseDB(t, db)

	var count int64
	if err := db.Model(&models.Goal{}).Count(&count).Error; err == nil {
		t.Error("expected queries on a closed database to fail")
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.NewTestDB(t)

	tx := testutil.CreateTestTransaction(t, db, models.CategoryMechanics, 250, time.Now())
	if tx.ID == "" {
		t.Fatal("transaction should have an ID")
	}
	if tx.Amount.IntPart() != 250 {
		t.Errorf("expected amount 250, got %s", tx.Amount)
	}

	other := testutil.NewTransaction(models.CategoryMechanics, 1, time.Now())
	if other.ID == tx.ID || other.Vehicle == tx.Vehicle {
		t.Error("expected fixtures to be unique")
	}

	goal := testutil.CreateTestGoal(t, db, models.CategoryDSP, 6000)
	if goal.Target.IntPart() != 6000 {
		t.Errorf("expected target 6000, got %s", goal.Target)
	}
}

func TestFailingStore(t *testing.T) {
	s := testutil.NewFailingStore()
	ctx := context.Background()

	testutil.AssertNoError(t, s.Set(ctx, "k", []byte("v")))

	s.FailGet.Store(true)
	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, testutil.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}

	s.FailSet.Store(true)
	if err := s.Set(ctx, "k", nil); !errors.Is(err, testutil.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAssertAppError(t *testing.T) {
	err := apperrors.WithMessage(apperrors.ErrTransactionNotFound, "custom message")
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
