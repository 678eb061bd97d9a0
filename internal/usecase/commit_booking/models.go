package commit_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	UserID      int64                  // ID пользователя (Telegram ID)
	Date        time.Time              // Дата записи (без времени)
	ProcedureID string                 // Идентификатор процедуры из каталога
	StartTime   types.TimeString       // Начало окна, полученное на шаге поиска
	ExactFit    bool                   // Окно занимается целиком
	OnBehalf    *domain.HairAttributes // Атрибуты волос клиента при записи администратором
}

// BookedSlot занятый этап процедуры
type BookedSlot struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString
	State     domain.SlotState
}

// Response модель ответа с созданной записью
type Response struct {
	Date          time.Time
	ProcedureID   string
	ProcedureName string
	StartTime     types.TimeString
	EndTime       types.TimeString
	Slots         []BookedSlot
}
