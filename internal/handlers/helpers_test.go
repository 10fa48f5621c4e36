package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "painel/internal/errors"
	"painel/internal/services"
	"painel/internal/validator"
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestRespondWithError(t *testing.T) {
	run := func(err error) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { respondWithError(c, err) })
		return doRequest(r, http.MethodGet, "/", "")
	}

	t.Run("uses app error status and code", func(t *testing.T) {
		rec := run(apperrors.Wrap(apperrors.ErrStorageWrite, errors.New("disk full")))
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "STORAGE_WRITE_FAILED")
		if strings.Contains(rec.Body.String(), "disk full") {
			t.Error("internal error must not leak into the response")
		}
	})

	t.Run("hides unexpected errors behind 500", func(t *testing.T) {
		rec := run(errors.New("boom"))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}

func TestParseMonth(t *testing.T) {
	current := services.MonthRef{Year: 2024, Month: 3}

	run := func(query string) (services.MonthRef, error) {
		var got services.MonthRef
		var gotErr error
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			got, gotErr = parseMonth(c, current)
		})
		doRequest(r, http.MethodGet, "/"+query, "")
		return got, gotErr
	}

	t.Run("defaults to current month", func(t *testing.T) {
		got, err := run("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != current {
			t.Errorf("expected %v, got %v", current, got)
		}
	})

	t.Run("fills missing year", func(t *testing.T) {
		got, err := run("?month=11")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year != 2024 || got.Month != 11 {
			t.Errorf("expected 2024-11, got %v", got)
		}
	})

	t.Run("rejects month out of range", func(t *testing.T) {
		_, err := run("?year=2024&month=13")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects non-numeric year", func(t *testing.T) {
		_, err := run("?year=abc")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
