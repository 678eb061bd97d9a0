package create_day

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	got *models.CreateDayRequest
	err error
}

func (f *fakeService) CreateDay(_ context.Context, req *models.CreateDayRequest) (*models.DayResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.DayResponse{ID: 1, Date: req.Date, WorkHourStart: "10:00", WorkHourEnd: "19:00"}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/days", strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "1")
	w := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.Nop()).Handle)).ServeHTTP(w, r)
	return w
}

func TestHandleCreated(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, `{"date":"2024-04-27","isVisible":true}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), svc.got.UserID)
	assert.Equal(t, "2024-04-27", svc.got.Date)
	assert.True(t, svc.got.IsVisible)
	assert.Nil(t, svc.got.WorkHourStart)
	assert.Contains(t, w.Body.String(), `"date":"2024-04-27"`)
}

func TestHandleErrors(t *testing.T) {
	valid := `{"date":"2024-04-27"}`

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed json", body: `{"date":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"date":"2024-04-27","userId":5}`, wantStatus: http.StatusBadRequest},
		{name: "invalid day", body: valid, err: days.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not an admin", body: valid, err: days.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already exists", body: valid, err: days.ErrDayAlreadyExists, wantStatus: http.StatusConflict},
		{name: "internal", body: valid, err: days.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandleWithoutUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/days", strings.NewReader(`{"date":"2024-04-27"}`))
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.Nop()).Handle(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
