package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordVerification(t *testing.T) {
	m := New()
	m.RecordVerification("captain", "verified")
	m.RecordVerification("captain", "verified")
	m.RecordVerification("player", "mismatch")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues("captain", "verified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verifications.WithLabelValues("player", "mismatch")))
}

func TestRecordTransition(t *testing.T) {
	m := New()
	m.RecordTransition("captain", "approved", nil)
	m.RecordTransition("captain", "approved", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("captain", "approved", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("captain", "approved", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordVerification("captain", "verified")
		m.RecordTransition("player", "rejected", nil)
		m.RecordEmail(nil)
	})
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/api/teams/1", "/api/teams/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/teams/{id}", "GET", "418")))
}
