package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"event-dashboard/backend/config"
	"event-dashboard/backend/internal/api/handler"
	"event-dashboard/backend/internal/repository"
	"event-dashboard/backend/internal/service"
)

type denyAll struct{}

func (denyAll) CheckRateLimit(context.Context, string, int, time.Duration) (bool, error) {
	return false, nil
}

// emptySource 所有文件均不存在
type emptySource struct{}

func (emptySource) Read(_ context.Context, name string) (string, error) {
	return "", errors.New("open " + name + ": no such file or directory")
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load 应成功: %v", err)
	}
	cfg.Scoreboard.Source = "csv"

	repo := repository.NewRepository(repository.NewKVVenueStore(repository.NewUnavailableKV(nil)), repository.NewUnavailableKV(nil))
	svc := service.NewService(cfg, repo, emptySource{}, nil, zap.NewNop())
	return Setup(cfg, handler.NewHandler(svc), denyAll{}, zap.NewNop())
}

func TestSetup_Routes(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/v1/venues", http.StatusOK},
		{"GET", "/api/v1/venues/update", http.StatusInternalServerError},
		{"POST", "/api/v1/venues/update", http.StatusTooManyRequests},
		{"GET", "/api/v1/scoreboard", http.StatusInternalServerError},
		{"GET", "/api/v1/schedule", http.StatusOK},
		{"GET", "/api/v1/teams", http.StatusOK},
		{"GET", "/api/v1/contacts", http.StatusOK},
		{"GET", "/api/v1/props", http.StatusOK},
		{"GET", "/api/v1/alerts", http.StatusOK},
		{"GET", "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}
		})
	}
}

func TestSetup_VenuesFallBackToEmpty(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/venues", nil))

	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if venues, ok := body["venues"].([]any); !ok || len(venues) != 0 {
		t.Errorf("expected empty venues array, got %v", body["venues"])
	}
}
