package day

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// FlagsUpdate изменение флагов дня; nil - поле не меняется
type FlagsUpdate struct {
	IsVisible *bool
	IsWeekend *bool
}

// IsEmpty возвращает true, если ни одно поле не задано
func (u FlagsUpdate) IsEmpty() bool {
	return u.IsVisible == nil && u.IsWeekend == nil
}

// DatedSlot слот вместе с датой его дня
type DatedSlot struct {
	Date time.Time
	Slot domain.TimeSlot
}
