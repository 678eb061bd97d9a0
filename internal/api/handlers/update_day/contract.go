package update_day

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
)

type DayService interface {
	UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
