package find_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	findSlot "github.com/m04kA/SMC-SalonBookingService/internal/usecase/find_slot"
)

const (
	msgMissingUserID        = "отсутствует ID пользователя"
	msgMissingProcedureID   = "ID процедуры обязателен"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingConfirmFields = "procedureId и startTime обязательны"
	msgInvalidParams        = "некорректные параметры: дата YYYY-MM-DD, время HH:MM, атрибуты волос передаются вместе"
	msgUserNotFound         = "пользователь не найден"
	msgNotVerified          = "клиент не прошел проверку или не заполнил атрибуты волос"
	msgForbidden            = "доступ запрещен"
	msgProcedureNotFound    = "процедура не найдена"
	msgNotConfigured        = "длительность процедуры не настроена"
	msgDayNotFound          = "рабочий день не найден"
	msgDayNotVisible        = "запись на этот день закрыта"
	msgProposalOutdated     = "предложенное время уже занято, выберите время заново"
)

type Handler struct {
	useCase FindSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/days/{date}/fit
// Query params: procedureId (required), proposedStart (HH:MM, шаг подтверждения),
// hairLength + hairDensity (запись администратором за клиента)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /days/{date}/fit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	procedureID := query.Get("procedureId")
	if procedureID == "" {
		h.logger.Warn("GET /days/{date}/fit - Missing procedure ID")
		handlers.RespondBadRequest(w, msgMissingProcedureID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(userID, mux.Vars(r)["date"], procedureID,
		query.Get("proposedStart"), query.Get("hairLength"), query.Get("hairDensity"))
	if err != nil {
		h.logger.Warn("GET /days/{date}/fit - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	h.execute(w, r, "GET /days/{date}/fit", useCaseReq)
}

// HandleConfirm POST /api/v1/days/{date}/confirm
// Пересчитывает окно перед показом подтверждения; 409, если предложенное время уже неактуально
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days/{date}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days/{date}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ProcedureID == "" || req.StartTime == "" {
		handlers.RespondBadRequest(w, msgMissingConfirmFields)
		return
	}

	useCaseReq, err := ToUseCaseRequest(userID, mux.Vars(r)["date"], req.ProcedureID,
		req.StartTime, req.HairLength, req.HairDensity)
	if err != nil {
		h.logger.Warn("POST /days/{date}/confirm - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	h.execute(w, r, "POST /days/{date}/confirm", useCaseReq)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, useCaseReq *findSlot.Request) {
	userID, procedureID := useCaseReq.UserID, useCaseReq.ProcedureID
	date := useCaseReq.Date.Format(domain.DateFormat)

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findSlot.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, findSlot.ErrUserNotFound):
			h.logger.Warn("%s - User not found: user_id=%d", route, userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, findSlot.ErrNotVerified):
			h.logger.Warn("%s - Client not verified: user_id=%d", route, userID)
			handlers.RespondForbidden(w, msgNotVerified)

		case errors.Is(err, findSlot.ErrForbidden):
			h.logger.Warn("%s - Forbidden: user_id=%d", route, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrProcedureNotFound):
			h.logger.Warn("%s - Procedure not found: procedure_id=%s", route, procedureID)
			handlers.RespondNotFound(w, msgProcedureNotFound)

		case errors.Is(err, findSlot.ErrConfiguration):
			h.logger.Error("%s - Catalog misconfigured: procedure_id=%s, error=%v", route, procedureID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		case errors.Is(err, findSlot.ErrDayNotFound):
			h.logger.Warn("%s - Day not found: date=%s", route, date)
			handlers.RespondNotFound(w, msgDayNotFound)

		case errors.Is(err, findSlot.ErrDayNotVisible):
			h.logger.Warn("%s - Day closed: user_id=%d, date=%s", route, userID, date)
			handlers.RespondForbidden(w, msgDayNotVisible)

		case errors.Is(err, findSlot.ErrProposalOutdated):
			h.logger.Warn("%s - Proposal outdated: user_id=%d", route, userID)
			handlers.RespondConflict(w, msgProposalOutdated)

		default:
			h.logger.Error("%s - Failed to find slot: user_id=%d, procedure_id=%s, error=%v", route,
				userID, procedureID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Fit computed: user_id=%d, procedure_id=%s, available=%t", route,
		userID, procedureID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
