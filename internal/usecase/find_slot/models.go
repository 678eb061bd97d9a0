package find_slot

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на поиск времени записи
type Request struct {
	UserID        int64                  // ID пользователя (Telegram ID)
	Date          time.Time              // Дата записи (без времени)
	ProcedureID   string                 // Идентификатор процедуры из каталога
	ProposedStart *types.TimeString      // Ранее предложенное время (шаг подтверждения)
	OnBehalf      *domain.HairAttributes // Атрибуты волос клиента при записи администратором
}

// Response модель ответа с найденным временем
type Response struct {
	Date          time.Time
	ProcedureID   string
	ProcedureName string
	Available     bool // false - свободного окна нужной длины нет
	StartTime     types.TimeString
	EndTime       types.TimeString
	ExactFit      bool  // окно будет занято целиком
	Stages        []int // длительности этапов в минутах
	TotalMinutes  int
}
