package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

func newHealthRouter(checks map[string]HealthCheck) *gin.Engine {
	r := gin.New()
	h := NewHealthHandler(checks, nil, nil)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	return r
}

func TestLiveness(t *testing.T) {
	r := newHealthRouter(nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	r := newHealthRouter(map[string]HealthCheck{
		"postgres": func(_ context.Context) error { return nil },
		"redis":    func(_ context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "ok", body.Components["postgres"])
}

func TestReadiness_DependencyDown(t *testing.T) {
	r := newHealthRouter(map[string]HealthCheck{
		"postgres": func(_ context.Context) error { return nil },
		"kafka": func(_ context.Context) error {
			return apperrors.New(apperrors.ErrCodeExternalService, "broker unreachable")
		},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Components["postgres"])
	assert.Contains(t, body.Components["kafka"], "broker unreachable")
}
