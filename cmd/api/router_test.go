package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	emaildomain "maildash-backend/internal/email/domain"
	"maildash-backend/pkg/config"
	"maildash-backend/pkg/metrics"
)

// stubUsecase lets each test script the orchestrator's behavior.
type stubUsecase struct {
	ingestFn      func(ctx context.Context) ([]emaildomain.Email, error)
	resummarizeFn func(ctx context.Context, id uint) (*emaildomain.Email, error)
	listFn        func(category string) ([]emaildomain.Email, error)
	exportFn      func() ([]emaildomain.Email, error)
	deleteFn      func(id uint) error
}

func (s *stubUsecase) Ingest(ctx context.Context) ([]emaildomain.Email, error) {
	return s.ingestFn(ctx)
}

func (s *stubUsecase) Resummarize(ctx context.Context, id uint) (*emaildomain.Email, error) {
	return s.resummarizeFn(ctx, id)
}

func (s *stubUsecase) List(category string) ([]emaildomain.Email, error) {
	return s.listFn(category)
}

func (s *stubUsecase) Export() ([]emaildomain.Email, error) {
	return s.exportFn()
}

func (s *stubUsecase) Delete(id uint) error {
	return s.deleteFn(id)
}

func newTestEngine(uc *stubUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AllowedOrigin: "http://localhost:5173"}
	return NewHandler(uc, cfg, metrics.NewServerMetrics("test")).Engine()
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(&stubUsecase{})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestListEmailsPassesCategoryFilter(t *testing.T) {
	var gotCategory string
	engine := newTestEngine(&stubUsecase{
		listFn: func(category string) ([]emaildomain.Email, error) {
			gotCategory = category
			return []emaildomain.Email{{ID: 1, Subject: "invoice"}}, nil
		},
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/emails?category=Invoice", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if gotCategory != "Invoice" {
		t.Fatalf("category = %q", gotCategory)
	}

	var emails []emaildomain.Email
	if err := json.NewDecoder(res.Body).Decode(&emails); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(emails) != 1 || emails[0].ID != 1 {
		t.Fatalf("unexpected response: %+v", emails)
	}
}

func TestIngestRespondsCreatedWithCount(t *testing.T) {
	engine := newTestEngine(&stubUsecase{
		ingestFn: func(context.Context) ([]emaildomain.Email, error) {
			return []emaildomain.Email{{ID: 1}, {ID: 2}}, nil
		},
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/emails/ingest", nil))

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.Code)
	}
	var body struct {
		Message string             `json:"message"`
		Count   int                `json:"count"`
		Data    []emaildomain.Email `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count != 2 || len(body.Data) != 2 || body.Message == "" {
		t.Fatalf("unexpected response: %+v", body)
	}
}

func TestIngestFailureIsGeneric500(t *testing.T) {
	engine := newTestEngine(&stubUsecase{
		ingestFn: func(context.Context) ([]emaildomain.Email, error) {
			return nil, context.DeadlineExceeded
		},
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/emails/ingest", nil))

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Internal details stay server-side.
	if body["error"] != "Failed to ingest emails" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestResummarizeUnknownIDReturns404(t *testing.T) {
	engine := newTestEngine(&stubUsecase{
		resummarizeFn: func(_ context.Context, id uint) (*emaildomain.Email, error) {
			return nil, emaildomain.ErrEmailNotFound
		},
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/emails/99/resummarize", nil))

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestResummarizeRejectsNonNumericID(t *testing.T) {
	engine := newTestEngine(&stubUsecase{
		resummarizeFn: func(_ context.Context, id uint) (*emaildomain.Email, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/emails/abc/resummarize", nil))

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestDeleteRespondsWithID(t *testing.T) {
	var deleted uint
	engine := newTestEngine(&stubUsecase{
		deleteFn: func(id uint) error {
			deleted = id
			return nil
		},
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/api/emails/7", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if deleted != 7 {
		t.Fatalf("deleted id = %d", deleted)
	}
}

func TestDeleteUnknownIDReturns404(t *testing.T) {
	engine := newTestEngine(&stubUsecase{
		deleteFn: func(uint) error { return emaildomain.ErrEmailNotFound },
	})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/api/emails/99", nil))

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	engine := newTestEngine(&stubUsecase{})

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/emails", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	engine.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if got := res.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	engine := newTestEngine(&stubUsecase{})

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if res.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing generated X-Request-ID")
	}

	res = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	engine.ServeHTTP(res, req)
	if got := res.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("X-Request-ID = %q, want req-123", got)
	}
}

func TestMetricsEndpointServesRegistry(t *testing.T) {
	engine := newTestEngine(&stubUsecase{})

	// One real request so the counters have something to report.
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	res := httptest.NewRecorder()
	engine.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}
