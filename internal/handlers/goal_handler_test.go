package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "painel/internal/errors"
	"painel/internal/models"
	"painel/internal/services"
)

type mockGoalService struct {
	getGoalsFn   func(ctx context.Context) ([]models.Goal, error)
	updateGoalFn func(ctx context.Context, category models.Category, target decimal.Decimal) (*models.Goal, error)
}

var _ services.GoalServicer = (*mockGoalService)(nil)

func (m *mockGoalService) GetGoals(ctx context.Context) ([]models.Goal, error) {
	return m.getGoalsFn(ctx)
}

func (m *mockGoalService) UpdateGoal(ctx context.Context, category models.Category, target decimal.Decimal) (*models.Goal, error) {
	return m.updateGoalFn(ctx, category, target)
}

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	r.GET("/goals", handler.GetGoals)
	r.PUT("/goals/:category", handler.UpdateGoal)
	return r
}

func TestGoalHandler_GetGoals(t *testing.T) {
	svc := &mockGoalService{
		getGoalsFn: func(context.Context) ([]models.Goal, error) {
			return models.DefaultGoals(), nil
		},
	}
	r := setupGoalRouter(NewGoalHandler(svc))

	rec := doRequest(r, http.MethodGet, "/goals", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	goals, ok := parseJSON(t, rec)["goals"].([]interface{})
	if !ok {
		t.Fatal("expected goals array")
	}
	if len(goals) != len(models.Categories()) {
		t.Errorf("expected %d goals, got %d", len(models.Categories()), len(goals))
	}
}

func TestGoalHandler_UpdateGoal(t *testing.T) {
	t.Run("decodes category from path", func(t *testing.T) {
		var captured models.Category
		var capturedTarget decimal.Decimal
		svc := &mockGoalService{
			updateGoalFn: func(_ context.Context, category models.Category, target decimal.Decimal) (*models.Goal, error) {
				captured, capturedTarget = category, target
				return &models.Goal{Category: category, Target: target}, nil
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc))

		rec := doRequest(r, http.MethodPut, "/goals/Funilaria%20e%20Pintura", `{"value":12000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured != models.CategoryBodyworkPaint {
			t.Errorf("expected %q, got %q", models.CategoryBodyworkPaint, captured)
		}
		if !capturedTarget.Equal(decimal.NewFromInt(12000)) {
			t.Errorf("expected target 12000, got %s", capturedTarget)
		}
	})

	t.Run("returns 400 for unknown category", func(t *testing.T) {
		r := setupGoalRouter(NewGoalHandler(&mockGoalService{}))

		rec := doRequest(r, http.MethodPut, "/goals/Pneus", `{"value":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CATEGORY")
	})

	t.Run("returns 400 for negative target", func(t *testing.T) {
		r := setupGoalRouter(NewGoalHandler(&mockGoalService{}))

		rec := doRequest(r, http.MethodPut, "/goals/DSP", `{"value":-1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT")
	})

	t.Run("returns 400 for missing target", func(t *testing.T) {
		r := setupGoalRouter(NewGoalHandler(&mockGoalService{}))

		rec := doRequest(r, http.MethodPut, "/goals/DSP", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 503 when storage write fails", func(t *testing.T) {
		svc := &mockGoalService{
			updateGoalFn: func(context.Context, models.Category, decimal.Decimal) (*models.Goal, error) {
				return nil, apperrors.ErrStorageWrite
			},
		}
		r := setupGoalRouter(NewGoalHandler(svc))

		rec := doRequest(r, http.MethodPut, "/goals/DSP", `{"value":5}`)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
