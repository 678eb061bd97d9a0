package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/days/models"
)

type DayService interface {
	GetDaySchedule(ctx context.Context, userID int64, date time.Time) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
