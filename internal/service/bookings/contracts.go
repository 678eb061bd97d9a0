package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
)

// SlotRepository интерфейс чтения слотов клиента
type SlotRepository interface {
	ListRequesterSlots(ctx context.Context, requesterID int64, from time.Time) ([]dayRepo.DatedSlot, error)
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
