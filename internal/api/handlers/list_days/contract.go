package list_days

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
)

type DayService interface {
	ListVisibleDays(ctx context.Context) (*models.DayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
