package list_days

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
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

// Handle GET /api/v1/days
// Возвращает открытые для записи дни, начиная с завтрашнего
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListVisibleDays(r.Context())
	if err != nil {
		h.logger.Error("GET /days - Failed to list days: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /days - Days retrieved successfully: count=%d", len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
