package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fakes embed the service interface; calling an unstubbed method panics.

type fakeCaptainService struct {
	services.CaptainService
	bulk    func(services.BulkStatusInput) (*services.BulkResult, error)
	delete  func(id int) (int, error)
	idCard  func(id, size int) ([]byte, error)
	getByID func(id int) (*models.Captain, error)
}

func (f *fakeCaptainService) BulkUpdateStatus(_ context.Context, in services.BulkStatusInput) (*services.BulkResult, error) {
	return f.bulk(in)
}

func (f *fakeCaptainService) Delete(_ context.Context, id int) (int, error) {
	return f.delete(id)
}

func (f *fakeCaptainService) IDCard(_ context.Context, id, size int) ([]byte, error) {
	return f.idCard(id, size)
}

func (f *fakeCaptainService) GetByID(_ context.Context, id int) (*models.Captain, error) {
	return f.getByID(id)
}

type fakeVerificationService struct {
	got    services.VerifyInput
	result *services.VerificationResult
	err    error
}

func (f *fakeVerificationService) Verify(_ context.Context, in services.VerifyInput) (*services.VerificationResult, error) {
	f.got = in
	return f.result, f.err
}

type fakeScheduleService struct {
	services.ScheduleService
	create func(services.ScheduleInput) (*models.Schedule, error)
}

func (f *fakeScheduleService) Create(_ context.Context, in services.ScheduleInput) (*models.Schedule, error) {
	return f.create(in)
}

type fakeDepartmentPlayerService struct {
	services.DepartmentPlayerService
	gotActor  services.Actor
	gotFilter models.ListFilter
}

func (f *fakeDepartmentPlayerService) List(_ context.Context, actor services.Actor, filter models.ListFilter) (*models.ListResult[models.DepartmentPlayer], error) {
	f.gotActor = actor
	f.gotFilter = filter
	return &models.ListResult[models.DepartmentPlayer]{
		Items: []models.DepartmentPlayer{{ID: 1, Name: "Meera", UniqueID: "PLY-0001"}},
		Total: 1,
	}, nil
}

func TestCaptainBulkStatus(t *testing.T) {
	var got services.BulkStatusInput
	h := NewCaptainHandler(&fakeCaptainService{
		bulk: func(in services.BulkStatusInput) (*services.BulkResult, error) {
			got = in
			return &services.BulkResult{Requested: 3, Succeeded: 2, Failed: 1, FailedIDs: []int{9}}, nil
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/bulk-status", strings.NewReader(`{"ids":[1,9,2],"status":"approved"}`))
	rec := httptest.NewRecorder()
	h.BulkStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int{1, 9, 2}, got.IDs)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, map[string]interface{}{
		"requested":  float64(3),
		"succeeded":  float64(2),
		"failed":     float64(1),
		"failed_ids": []interface{}{float64(9)},
	}, decodeBody(t, rec))
}

func TestCaptainDelete(t *testing.T) {
	h := NewCaptainHandler(&fakeCaptainService{
		delete: func(id int) (int, error) {
			if id == 5 {
				return 4, nil
			}
			return 0, services.ErrCaptainNotFound
		},
	}, discardLogger())
	router := chi.NewRouter()
	router.Delete("/captains/{id}", h.Delete)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/captains/5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), decodeBody(t, rec)["players_removed"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/captains/6", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/captains/six", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaptainIDCard(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	var gotSize int
	h := NewCaptainHandler(&fakeCaptainService{
		idCard: func(id, size int) ([]byte, error) {
			gotSize = size
			return png, nil
		},
	}, discardLogger())
	router := chi.NewRouter()
	router.Get("/captains/{id}/id-card.png", h.IDCard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/captains/3/id-card.png?size=512", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 512, gotSize)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "captain-3.png")
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestCaptainMeUsesTokenSubject(t *testing.T) {
	h := NewCaptainHandler(&fakeCaptainService{
		getByID: func(id int) (*models.Captain, error) {
			return &models.Captain{ID: id, Name: "Kiran", UniqueID: "CPT-0007"}, nil
		},
	}, discardLogger())

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(middleware.WithClaims(req.Context(), &services.Claims{UserID: 7, Role: models.RoleCaptain}))
	rec = httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	captain := decodeBody(t, rec)["captain"].(map[string]interface{})
	assert.Equal(t, float64(7), captain["id"])
	assert.Equal(t, "CPT-0007", captain["unique_id"])
}

func TestVerifyOutcomes(t *testing.T) {
	rID, uID := 3, 8
	fake := &fakeVerificationService{result: &services.VerificationResult{
		Outcome:         services.OutcomeMismatch,
		Type:            services.VerifyCaptain,
		Message:         "R-Number and Unique ID belong to different captains",
		RNumberMatchID:  &rID,
		UniqueIDMatchID: &uID,
	}}
	h := NewVerificationHandler(fake)

	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/verify",
		strings.NewReader(`{"type":"captain","r_number":"R100","unique_id":"cpt-0008"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "R100", fake.got.RNumber)
	body := decodeBody(t, rec)
	assert.Equal(t, "mismatch", body["outcome"])
	assert.Equal(t, float64(3), body["r_number_match_id"])
	assert.Equal(t, float64(8), body["unique_id_match_id"])
	assert.NotContains(t, body, "record")

	fake.err = services.ErrVerificationIdentifiers
	rec = httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(`{"type":"captain"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleCreate(t *testing.T) {
	h := NewScheduleHandler(&fakeScheduleService{
		create: func(in services.ScheduleInput) (*models.Schedule, error) {
			if in.Sport != models.GeneralSport && in.Gender == "" {
				return nil, services.ErrScheduleGenderRequired
			}
			return &models.Schedule{ID: 1, Activity: in.Activity, Sport: in.Sport}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/schedule", strings.NewReader(
		`{"serial_no":1,"date":"2024-03-01","time":"09:00","activity":"Opening","sport":"General"}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, decodeBody(t, rec), "schedule")

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/schedule", strings.NewReader(
		`{"serial_no":2,"date":"2024-03-02","time":"10:00","activity":"Final","sport":"Cricket"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/schedule", strings.NewReader(`{"venue":"Ground"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unknown key")
}

func TestDepartmentPlayerListPassesActor(t *testing.T) {
	fake := &fakeDepartmentPlayerService{}
	h := NewDepartmentPlayerHandler(fake, discardLogger())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/players", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/players?sport=Football&limit=10", nil)
	req = req.WithContext(middleware.WithClaims(req.Context(), &services.Claims{UserID: 12, Role: models.RoleCaptain}))
	rec = httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.Actor{ID: 12, Role: models.RoleCaptain}, fake.gotActor)
	assert.Equal(t, "Football", fake.gotFilter.Sport)
	assert.Equal(t, 10, fake.gotFilter.Limit)
	assert.Equal(t, float64(1), decodeBody(t, rec)["total"])
}

func TestRulePreview(t *testing.T) {
	h := NewRuleHandler(services.NewRuleService(nil))

	rec := httptest.NewRecorder()
	h.Preview(rec, httptest.NewRequest(http.MethodPost, "/rules/preview",
		strings.NewReader(`{"text":"- **No** spikes"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<ul><li><strong>No</strong> spikes</li></ul>", decodeBody(t, rec)["html"])
}
