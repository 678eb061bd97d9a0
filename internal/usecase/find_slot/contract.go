package find_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// DayRepository интерфейс репозитория рабочих дней
type DayRepository interface {
	GetDayByDate(ctx context.Context, date time.Time) (*domain.Day, error)
	GetDayByDateForUpdate(ctx context.Context, date time.Time) (*domain.Day, error)
	ListSlots(ctx context.Context, dayID int64) ([]domain.TimeSlot, error)
	CreateSlot(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
}

// Catalog интерфейс каталога процедур
type Catalog interface {
	Get(procedureID string) (domain.Procedure, error)
	Duration(procedureID string, length domain.HairLength, density domain.HairDensity) (domain.DurationPlan, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetClient(ctx context.Context, userID int64) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// DayLocker сериализует запись в слоты одного дня
type DayLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Metrics интерфейс метрик поиска слота
type Metrics interface {
	IncFit(outcome string)
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
