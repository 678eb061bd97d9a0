package update_day

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateDayRequest
	err error
}

func (f *fakeService) UpdateDay(_ context.Context, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.DayResponse{ID: 1, Date: req.Date.Format("2006-01-02")}, nil
}

func patch(svc *fakeService, date, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/days/{date}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	r := httptest.NewRequest(http.MethodPatch, "/api/v1/days/"+date, strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandleUpdated(t *testing.T) {
	svc := &fakeService{}
	w := patch(svc, "2024-04-27", `{"isVisible":false}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.got.UserID)
	assert.Equal(t, "2024-04-27", svc.got.Date.Format("2006-01-02"))
	require.NotNil(t, svc.got.IsVisible)
	assert.False(t, *svc.got.IsVisible)
	assert.Nil(t, svc.got.IsWeekend)
}

func TestHandleErrors(t *testing.T) {
	valid := `{"isWeekend":true}`

	tests := []struct {
		name       string
		date       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad date", date: "27.04.2024", body: valid, wantStatus: http.StatusBadRequest},
		{name: "impossible date", date: "2024-02-30", body: valid, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"isWeekend":`, wantStatus: http.StatusBadRequest},
		{name: "nothing to update", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "not an admin", body: valid, err: days.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "day not found", body: valid, err: days.ErrDayNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: valid, err: days.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := tt.date
			if date == "" {
				date = "2024-04-27"
			}
			svc := &fakeService{err: tt.err}
			w := patch(svc, date, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Nil(t, svc.got)
			}
		})
	}
}
