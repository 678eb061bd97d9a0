package procedures

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Catalog интерфейс каталога процедур
type Catalog interface {
	List() []domain.Procedure
	Duration(procedureID string, length domain.HairLength, density domain.HairDensity) (domain.DurationPlan, error)
}
