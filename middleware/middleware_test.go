package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFunc func(ctx context.Context, token string) (*services.Claims, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (*services.Claims, error) {
	return f(ctx, token)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func staticAuth(role models.UserRole) Authenticator {
	return authFunc(func(_ context.Context, token string) (*services.Claims, error) {
		if token != "good" {
			return nil, services.ErrAuthenticationFailed
		}
		return &services.Claims{UserID: 7, Role: role, TokenID: "jti"}, nil
	})
}

func TestAuthenticate(t *testing.T) {
	var seen *services.Claims
	h := Authenticate(staticAuth(models.RoleCaptain))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		actor, err := ActorFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, services.Actor{ID: 7, Role: models.RoleCaptain}, actor)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"valid", "bearer good", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	require.NotNil(t, seen)
	assert.Equal(t, 7, seen.UserID)
}

func TestAuthorize(t *testing.T) {
	adminOnly := Authorize(models.RoleAdmin)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for role, want := range map[models.UserRole]int{
		models.RoleAdmin:   http.StatusNoContent,
		models.RoleCaptain: http.StatusForbidden,
		models.RolePlayer:  http.StatusForbidden,
	} {
		ctx := WithClaims(context.Background(), &services.Claims{UserID: 1, Role: role})
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		assert.Equal(t, want, rec.Code, role)
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(60, 2)
	limiter.now = func() time.Time { return now }
	h := limiter.Middleware(okHandler)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1000"), "buckets are per ip")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1003"))
}

func TestRateLimiterPurgesIdleVisitorsPeriodically(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	limiter := NewIPRateLimiter(60, 2)
	limiter.now = func() time.Time { return now }
	limiter.purgeEvery = 15 * time.Minute

	assert.True(t, limiter.allow("10.0.0.1"))

	now = start.Add(11 * time.Minute)
	assert.True(t, limiter.allow("10.0.0.2"))
	assert.Len(t, limiter.visitors, 2, "idle visitors stay until the next purge")

	now = start.Add(15 * time.Minute)
	assert.True(t, limiter.allow("10.0.0.3"))
	assert.Len(t, limiter.visitors, 2)
	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Equal(t, now, limiter.lastPurge)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/teams", nil))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"path":"/api/teams"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestClaimsMissing(t *testing.T) {
	_, err := GetUserIDFromContext(context.Background())
	assert.True(t, errors.Is(err, errNoClaims))
}
