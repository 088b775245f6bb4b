package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/sports-portal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Asha","age":20}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "syntax", body: `{"name":}`, wantErr: "badly-formed JSON (at character"},
		{name: "truncated", body: `{"name":"Asha"`, wantErr: "badly-formed JSON"},
		{name: "wrong type", body: `{"age":"twenty"}`, wantErr: `incorrect JSON type for field "age"`},
		{name: "unknown field", body: `{"nickname":"A"}`, wantErr: `unknown key "nickname"`},
		{name: "two values", body: `{"name":"A"}{"name":"B"}`, wantErr: "single JSON value"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", maxJSONBytes) + `"}`, wantErr: "must not be larger than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst payload
			err := readJSON(rec, req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, payload{Name: "Asha", Age: 20}, dst)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrCaptainNotFound, http.StatusNotFound},
		{fmt.Errorf("get rule 3: %w", services.ErrRuleNotFound), http.StatusNotFound},
		{services.ErrEmailConflict, http.StatusConflict},
		{services.ErrSportLimitReached, http.StatusConflict},
		{services.ErrInvalidStatusTransition, http.StatusBadRequest},
		{services.ErrScheduleGenderRequired, http.StatusBadRequest},
		{services.ErrMatchSameTeams, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrAccountNotApproved, http.StatusForbidden},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrStorageNotConfigured, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.want, rec.Code)
			body := decodeBody(t, rec)
			assert.Contains(t, body, "error")
			if tt.want == http.StatusInternalServerError {
				assert.NotContains(t, body["error"], "connection reset")
			}
		})
	}
}

func TestMapServiceErrorToHTTPValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("create captain: %w", &services.ValidationError{Fields: map[string]string{
		"email": "must be a valid email address",
	}})
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"error": map[string]interface{}{"email": "must be a valid email address"},
	}, decodeBody(t, rec))
}

func TestParseListFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/?search=+ravi+&sport=Cricket&status=approved&page=2&limit=25&captain_id=7", nil)

	filter, err := parseListFilter(req)
	require.NoError(t, err)

	assert.Equal(t, "ravi", filter.Search)
	assert.Equal(t, "Cricket", filter.Sport)
	assert.Equal(t, "approved", filter.Status)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 25, filter.Limit)
	require.NotNil(t, filter.CaptainID)
	assert.Equal(t, 7, *filter.CaptainID)
	assert.Nil(t, filter.TeamID)

	for _, query := range []string{"?limit=-1", "?page=abc", "?team_id=x"} {
		_, err := parseListFilter(httptest.NewRequest(http.MethodGet, "/"+query, nil))
		assert.Error(t, err, query)
	}
}

func TestGetIDFromURL(t *testing.T) {
	var (
		gotID  int
		gotErr error
	)
	router := chi.NewRouter()
	router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = getIDFromURL(r, "id")
	})

	tests := []struct {
		path    string
		want    int
		wantErr bool
	}{
		{"/items/42", 42, false},
		{"/items/abc", 0, true},
		{"/items/0", 0, true},
		{"/items/-3", 0, true},
	}
	for _, tt := range tests {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
		if tt.wantErr {
			assert.Error(t, gotErr, tt.path)
			continue
		}
		require.NoError(t, gotErr, tt.path)
		assert.Equal(t, tt.want, gotID)
	}
}
