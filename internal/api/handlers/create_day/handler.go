package create_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректные данные дня: дата YYYY-MM-DD, время HH:MM, начало раньше конца"
	msgAlreadyExists      = "рабочий день на эту дату уже создан"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service DayService
	logger  Logger
}

func NewHandler(service DayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	day, err := h.service.CreateDay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, days.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, days.ErrAccessDenied):
			h.logger.Warn("POST /days - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, days.ErrDayAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /days - Failed to create day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, day)
}
