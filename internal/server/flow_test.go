package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"painel/internal/celebration"
	"painel/internal/logger"
	"painel/internal/middleware"
	"painel/internal/progress"
	"painel/internal/services"
	"painel/internal/storage"
	"painel/internal/validator"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	Router *gin.Engine
	Broker *celebration.Broker
	Result *storage.Result
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
	validator.Register()
}

// setupApp creates a full application stack backed by the in-memory store.
func setupApp(t *testing.T, apiKey string) *testApp {
	t.Helper()

	res, err := storage.NewFactory(nil).Create(context.Background(), storage.Config{Type: storage.BackendMemory})
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}

	broker := celebration.NewBroker(celebration.Options{
		Interval: 5 * time.Millisecond,
		Duration: 20 * time.Millisecond,
	}, nil)
	t.Cleanup(func() {
		broker.Close()
		_ = res.Cleanup()
	})

	tracker := progress.NewTracker(res.Celebrations, broker, nil)
	goalService := services.NewGoalService(res.Adapter)

	router := NewRouter(Deps{
		Transactions: services.NewTransactionService(res.Adapter),
		Goals:        goalService,
		Dashboard:    services.NewDashboardService(res.Adapter, goalService, tracker, time.UTC),
		Reports:      services.NewReportService(res.Adapter, time.UTC),
		Celebrations: broker,
		APIKey:       apiKey,
	})

	return &testApp{Router: router, Broker: broker, Result: res}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(middleware.APIKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createTransaction records a sale and returns its id.
func (app *testApp) createTransaction(t *testing.T, category string, value float64) string {
	t.Helper()
	body := fmt.Sprintf(`{"vehicle":"Onix","license_plate":"BRA2E19","type":%q,"value":%v}`, category, value)
	rec := app.request(http.MethodPost, "/api/v1/transactions", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}

func findGoal(t *testing.T, dashboard map[string]interface{}, category string) map[string]interface{} {
	t.Helper()
	for _, g := range dashboard["goals"].([]interface{}) {
		goal := g.(map[string]interface{})
		if goal["type"] == category {
			return goal
		}
	}
	t.Fatalf("goal %q not in dashboard", category)
	return nil
}

func TestTransactionFlow_CRUD(t *testing.T) {
	app := setupApp(t, "")

	id := app.createTransaction(t, "Mecânica", 350)
	app.createTransaction(t, "DSP", 120.25)

	rec := app.request(http.MethodGet, "/api/v1/transactions", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if total := parseJSON(t, rec)["total_items"]; total != float64(2) {
		t.Errorf("expected 2 transactions, got %v", total)
	}

	rec = app.request(http.MethodPut, "/api/v1/transactions/"+id,
		`{"vehicle":"Onix LT","license_plate":"bra2e19","type":"Mecânica","value":400}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if updated["vehicle"] != "Onix LT" || updated["value"] != float64(400) {
		t.Errorf("update not applied: %v", updated)
	}
	if updated["license_plate"] != "BRA2E19" {
		t.Errorf("expected normalized plate, got %v", updated["license_plate"])
	}

	rec = app.request(http.MethodDelete, "/api/v1/transactions/"+id, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/api/v1/transactions/"+id, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/api/v1/dashboard/today", "", "")
	today := parseJSON(t, rec)
	if today["total"] != 120.25 || today["count"] != float64(1) {
		t.Errorf("expected today total 120.25 over 1 sale, got %v over %v", today["total"], today["count"])
	}
}

func TestGoalFlow_CelebratesOnce(t *testing.T) {
	app := setupApp(t, "")
	bursts, cancel := app.Broker.Subscribe()
	defer cancel()

	rec := app.request(http.MethodPut, "/api/v1/goals/DSP", `{"value":200}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on goal update, got %d: %s", rec.Code, rec.Body.String())
	}

	app.createTransaction(t, "DSP", 150)
	dash := parseJSON(t, app.request(http.MethodGet, "/api/v1/dashboard", "", ""))
	goal := findGoal(t, dash, "DSP")
	if goal["state"] != string(progress.BelowGoal) || goal["percent"] != float64(75) {
		t.Fatalf("expected BELOW_GOAL at 75%%, got %v at %v", goal["state"], goal["percent"])
	}

	app.createTransaction(t, "DSP", 60)
	dash = parseJSON(t, app.request(http.MethodGet, "/api/v1/dashboard", "", ""))
	goal = findGoal(t, dash, "DSP")
	if goal["state"] != string(progress.AtGoal) || goal["celebrated"] != true {
		t.Fatalf("expected first celebration, got %v", goal)
	}
	if goal["percent"] != float64(100) {
		t.Errorf("expected percent clamped to 100, got %v", goal["percent"])
	}

	select {
	case b := <-bursts:
		if b.Category != "DSP" {
			t.Errorf("expected DSP burst, got %q", b.Category)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a celebration burst")
	}

	dash = parseJSON(t, app.request(http.MethodGet, "/api/v1/dashboard", "", ""))
	goal = findGoal(t, dash, "DSP")
	if goal["celebrated"] != false {
		t.Errorf("expected no second celebration, got %v", goal)
	}
	celebrated := dash["celebrated_goals"].([]interface{})
	if len(celebrated) != 1 || celebrated[0] != "DSP" {
		t.Errorf("expected celebrated_goals [DSP], got %v", celebrated)
	}

	// Raising and lowering the goal does not re-arm the celebration.
	app.request(http.MethodPut, "/api/v1/goals/DSP", `{"value":1000}`, "")
	app.request(http.MethodGet, "/api/v1/dashboard", "", "")
	app.request(http.MethodPut, "/api/v1/goals/DSP", `{"value":100}`, "")
	dash = parseJSON(t, app.request(http.MethodGet, "/api/v1/dashboard", "", ""))
	goal = findGoal(t, dash, "DSP")
	if goal["state"] != string(progress.AlreadyCelebrated) || goal["celebrated"] != false {
		t.Errorf("expected ALREADY_CELEBRATED without a new celebration, got %v", goal)
	}
}

func TestReportFlow_MonthlyExport(t *testing.T) {
	app := setupApp(t, "")
	app.createTransaction(t, "Outros Serviços", 99.9)

	now := time.Now().UTC()
	path := fmt.Sprintf("/api/v1/reports/monthly?year=%d&month=%d", now.Year(), int(now.Month()))
	report := parseJSON(t, app.request(http.MethodGet, path, "", ""))
	if report["total"] != 99.9 || report["count"] != float64(1) {
		t.Errorf("expected 99.9 over 1 sale, got %v over %v", report["total"], report["count"])
	}

	rec := app.request(http.MethodGet, "/api/v1/reports/monthly/export?format=csv", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "99.90") {
		t.Errorf("expected amount in CSV, got %q", rec.Body.String())
	}
}

func TestAPIKey_GuardsMutations(t *testing.T) {
	app := setupApp(t, "s3cret")

	rec := app.request(http.MethodPost, "/api/v1/transactions",
		`{"vehicle":"Onix","license_plate":"BRA2E19","type":"DSP","value":10}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = app.request(http.MethodPost, "/api/v1/transactions",
		`{"vehicle":"Onix","license_plate":"BRA2E19","type":"DSP","value":10}`, "s3cret")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with key, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/api/v1/transactions", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected reads to stay open, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t, "")
	rec := app.request(http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t, "")
	rec := app.request(http.MethodGet, "/api/v1/vehicles", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := parseJSON(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok || errObj["code"] != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND error body, got %v", body)
	}
}
