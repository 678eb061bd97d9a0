package create_day

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
)

type DayService interface {
	CreateDay(ctx context.Context, req *models.CreateDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
