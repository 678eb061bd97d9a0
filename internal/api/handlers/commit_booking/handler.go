package commit_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/catalog"
	commitBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/commit_booking"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры: дата YYYY-MM-DD, время HH:MM, атрибуты волос передаются вместе"
	msgUserNotFound       = "пользователь не найден"
	msgNotVerified        = "клиент не прошел проверку или не заполнил атрибуты волос"
	msgForbidden          = "доступ запрещен"
	msgProcedureNotFound  = "процедура не найдена"
	msgNotConfigured      = "длительность процедуры не настроена"
	msgDayNotFound        = "рабочий день не найден"
	msgDayNotVisible      = "запись на этот день закрыта"
	msgBookingConflict    = "выбранное время уже занято, выберите время заново"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/days/{date}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days/{date}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date := mux.Vars(r)["date"]

	var req CommitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days/{date}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, date)
	if err != nil {
		h.logger.Warn("POST /days/{date}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, commitBooking.ErrBookingConflict):
			h.logger.Warn("POST /days/{date}/bookings - Slot taken: user_id=%d, date=%s, start=%s", userID, date, req.StartTime)
			handlers.RespondConflict(w, msgBookingConflict)

		case errors.Is(err, commitBooking.ErrUserNotFound):
			h.logger.Warn("POST /days/{date}/bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, commitBooking.ErrNotVerified):
			h.logger.Warn("POST /days/{date}/bookings - Client not verified: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotVerified)

		case errors.Is(err, commitBooking.ErrForbidden):
			h.logger.Warn("POST /days/{date}/bookings - Forbidden: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrProcedureNotFound):
			h.logger.Warn("POST /days/{date}/bookings - Procedure not found: procedure_id=%s", req.ProcedureID)
			handlers.RespondNotFound(w, msgProcedureNotFound)

		case errors.Is(err, commitBooking.ErrConfiguration):
			h.logger.Error("POST /days/{date}/bookings - Catalog misconfigured: procedure_id=%s, error=%v", req.ProcedureID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		case errors.Is(err, commitBooking.ErrDayNotFound):
			h.logger.Warn("POST /days/{date}/bookings - Day not found: date=%s", date)
			handlers.RespondNotFound(w, msgDayNotFound)

		case errors.Is(err, commitBooking.ErrDayNotVisible):
			h.logger.Warn("POST /days/{date}/bookings - Day closed: user_id=%d, date=%s", userID, date)
			handlers.RespondForbidden(w, msgDayNotVisible)

		default:
			h.logger.Error("POST /days/{date}/bookings - Failed to commit booking: user_id=%d, date=%s, error=%v",
				userID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/bookings - Booking committed: user_id=%d, date=%s, %s-%s, procedure_id=%s",
		userID, date, result.StartTime, result.EndTime, result.ProcedureID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
