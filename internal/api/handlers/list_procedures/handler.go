package list_procedures

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const msgInvalidHair = "некорректные атрибуты волос: ожидаются hairLength (SHORT, MEDIUM, LONG) и hairDensity (THIN, MEDIUM, THICK)"

type Handler struct {
	service ProcedureService
	logger  Logger
}

func NewHandler(service ProcedureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/procedures
// Query params: hairLength, hairDensity (optional, together) - добавляют длительности к каждой процедуре
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	hair, err := handlers.ParseHairAttributes(query.Get("hairLength"), query.Get("hairDensity"))
	if err != nil {
		h.logger.Warn("GET /procedures - Invalid hair attributes: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHair)
		return
	}

	result, err := h.service.List(hair)
	if err != nil {
		h.logger.Error("GET /procedures - Failed to list procedures: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
