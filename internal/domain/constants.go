package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// Default working hours of a newly created day
const (
	DefaultWorkHourStart types.TimeString = "09:00"
	DefaultWorkHourEnd   types.TimeString = "18:00"
)

// Business validation constants
const (
	MinStageMinutes     = 1
	MaxProcedureMinutes = 12 * 60
	MaxProcedureStages  = 3
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
