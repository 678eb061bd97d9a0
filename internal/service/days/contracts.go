package days

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
)

// DayRepository интерфейс репозитория рабочих дней
type DayRepository interface {
	CreateDay(ctx context.Context, day *domain.Day) (*domain.Day, error)
	GetDayByDate(ctx context.Context, date time.Time) (*domain.Day, error)
	ListVisibleDays(ctx context.Context, after time.Time) ([]*domain.Day, error)
	UpdateDayFlags(ctx context.Context, date time.Time, update dayRepo.FlagsUpdate) (*domain.Day, error)
	ListSlots(ctx context.Context, dayID int64) ([]domain.TimeSlot, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetClient(ctx context.Context, userID int64) (*domain.Client, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
