package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"painel/internal/models"
	"painel/internal/progress"
	"painel/internal/testutil"
)

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	loc := time.UTC
	setNow(t, time.Date(2024, 5, 20, 12, 0, 0, 0, loc))

	store, celebrations := newMemoryStore()
	recorder := &celebrationRecorder{}
	tracker := progress.NewTracker(celebrations, recorder, nil)
	goals := NewGoalService(store)
	svc := NewDashboardService(store, goals, tracker, loc)

	_, err := goals.UpdateGoal(ctx, models.CategoryDSP, decimal.NewFromInt(100))
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, store.SaveTransactions(ctx, []models.Transaction{
		testutil.NewTransaction(models.CategoryDSP, 60, time.Date(2024, 5, 2, 10, 0, 0, 0, loc)),
		testutil.NewTransaction(models.CategoryDSP, 60, time.Date(2024, 4, 30, 10, 0, 0, 0, loc)),
		testutil.NewTransaction(models.CategoryMechanics, 400, time.Date(2024, 5, 19, 10, 0, 0, 0, loc)),
	}))

	dash, err := svc.GetDashboard(ctx)
	testutil.AssertNoError(t, err)

	if dash.Year != 2024 || dash.Month != 5 {
		t.Errorf("unexpected month %d/%d", dash.Month, dash.Year)
	}
	if !dash.MonthTotal.Equal(decimal.NewFromInt(460)) {
		t.Errorf("expected month total 460, got %s", dash.MonthTotal)
	}
	if len(dash.Goals) != 9 {
		t.Fatalf("expected 9 goals, got %d", len(dash.Goals))
	}

	var dsp, mech GoalProgress
	for _, g := range dash.Goals {
		switch g.Category {
		case models.CategoryDSP:
			dsp = g
		case models.CategoryMechanics:
			mech = g
		}
	}

	// Goal totals span every month.
	if !dsp.Current.Equal(decimal.NewFromInt(120)) || dsp.Percent != 100 {
		t.Errorf("expected DSP at 120 clamped to 100%%, got %s / %v", dsp.Current, dsp.Percent)
	}
	if dsp.State != progress.AtGoal || !dsp.Celebrated {
		t.Errorf("expected DSP celebrated, got %+v", dsp)
	}
	if mech.Percent != 5 || mech.State != progress.BelowGoal {
		t.Errorf("expected Mecânica at 5%%, got %+v", mech)
	}
	if len(dash.CelebratedGoals) != 1 || dash.CelebratedGoals[0] != models.CategoryDSP {
		t.Errorf("unexpected celebrated goals %v", dash.CelebratedGoals)
	}

	// A second view does not celebrate again.
	again, err := svc.GetDashboard(ctx)
	testutil.AssertNoError(t, err)
	for _, g := range again.Goals {
		if g.Celebrated {
			t.Errorf("%s celebrated twice", g.Category)
		}
	}
	if calls := recorder.calls(); len(calls) != 1 {
		t.Errorf("expected one celebration, got %v", calls)
	}
}

func TestGetToday(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("BRT", -3*60*60)
	setNow(t, time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)) // 14 June 22:00 in loc

	store, celebrations := newMemoryStore()
	svc := NewDashboardService(store, NewGoalService(store), progress.NewTracker(celebrations, nil, nil), loc)

	t.Run("empty", func(t *testing.T) {
		today, err := svc.GetToday(ctx)
		testutil.AssertNoError(t, err)
		if !today.Total.IsZero() || today.Count != 0 || today.Transactions == nil {
			t.Errorf("expected zero summary, got %+v", today)
		}
	})

	t.Run("uses_location_calendar_day", func(t *testing.T) {
		testutil.AssertNoError(t, store.SaveTransactions(ctx, []models.Transaction{
			testutil.NewTransaction(models.CategoryDSP, 10, time.Date(2024, 6, 14, 8, 0, 0, 0, loc)),
			testutil.NewTransaction(models.CategoryDSP, 20, time.Date(2024, 6, 14, 21, 0, 0, 0, loc)),
			testutil.NewTransaction(models.CategoryDSP, 40, time.Date(2024, 6, 15, 9, 0, 0, 0, loc)),
		}))

		today, err := svc.GetToday(ctx)
		testutil.AssertNoError(t, err)
		if today.Date != "2024-06-14" {
			t.Errorf("expected 2024-06-14, got %s", today.Date)
		}
		if !today.Total.Equal(decimal.NewFromInt(30)) || today.Count != 2 {
			t.Errorf("expected 2 rows totalling 30, got %d / %s", today.Count, today.Total)
		}
		if today.TotalBRL != "R$ 30,00" {
			t.Errorf("expected formatted total R$ 30,00, got %q", today.TotalBRL)
		}
	})
}
