package commit_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	commitBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *commitBooking.Request
	resp *commitBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *commitBooking.Request) (*commitBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func post(uc *fakeUseCase, date, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/days/{date}/bookings", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/days/"+date+"/bookings", strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandleCommitted(t *testing.T) {
	uc := &fakeUseCase{resp: &commitBooking.Response{
		Date:          time.Date(2024, 4, 27, 0, 0, 0, 0, time.UTC),
		ProcedureID:   "keratin",
		ProcedureName: "Keratin",
		StartTime:     "10:00",
		EndTime:       "12:30",
		Slots: []commitBooking.BookedSlot{
			{ID: 2, StartTime: "10:00", EndTime: "11:00", State: domain.SlotBookedBusy},
			{ID: 3, StartTime: "11:00", EndTime: "11:30", State: domain.SlotBookedTransit},
			{ID: 4, StartTime: "11:30", EndTime: "12:30", State: domain.SlotBookedBusy},
		},
	}}

	w := post(uc, "2024-04-27", `{"procedureId":"keratin","startTime":"10:00","exactFit":false}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), uc.got.UserID)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.Nil(t, uc.got.OnBehalf)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Slots, 3)
	assert.Equal(t, "BOOKED_TRANSIT", body.Slots[1].State)
}

func TestHandleErrors(t *testing.T) {
	valid := `{"procedureId":"haircut","startTime":"10:00","exactFit":true}`

	tests := []struct {
		name       string
		date       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed json", body: `{"procedureId":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"procedureId":"haircut","userId":1}`, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"procedureId":"haircut","startTime":"25:00"}`, wantStatus: http.StatusBadRequest},
		{name: "bad date", date: "27.04.2024", body: valid, wantStatus: http.StatusBadRequest},
		{name: "conflict", body: valid, err: commitBooking.ErrBookingConflict, wantStatus: http.StatusConflict},
		{name: "user not found", body: valid, err: commitBooking.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", body: valid, err: commitBooking.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", body: valid, err: commitBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
		{
			name:       "duration not configured",
			body:       valid,
			err:        fmt.Errorf("%w: %w", commitBooking.ErrConfiguration, catalog.ErrDurationNotConfigured),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unknown procedure",
			body:       valid,
			err:        fmt.Errorf("%w: %w", commitBooking.ErrConfiguration, catalog.ErrProcedureNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := tt.date
			if date == "" {
				date = "2024-04-27"
			}
			w := post(&fakeUseCase{err: tt.err}, date, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
