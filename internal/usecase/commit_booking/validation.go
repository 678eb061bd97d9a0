package commit_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ProcedureID) == "" {
		return fmt.Errorf("%w: procedureId is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.OnBehalf != nil {
		if err := req.OnBehalf.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// resolveHair определяет атрибуты волос для расчета длительности
func resolveHair(client *domain.Client, onBehalf *domain.HairAttributes) (domain.HairAttributes, error) {
	if onBehalf != nil {
		if !client.IsAdmin {
			return domain.HairAttributes{}, ErrForbidden
		}
		return *onBehalf, nil
	}

	if !client.IsVerified && !client.IsAdmin {
		return domain.HairAttributes{}, ErrNotVerified
	}
	if !client.HasHairAttributes() {
		return domain.HairAttributes{}, fmt.Errorf("%w: hair attributes are not filled in", ErrNotVerified)
	}

	return domain.HairAttributes{Length: client.HairLength, Density: client.HairDensity}, nil
}

// checkDayAccess проверяет, что клиент может записаться на день
func checkDayAccess(day *domain.Day, client *domain.Client, now time.Time) error {
	if client.IsAdmin {
		return nil
	}
	if !day.IsBookableBy(client) {
		return ErrDayNotVisible
	}
	if day.Date.Format(domain.DateFormat) <= now.Format(domain.DateFormat) {
		return fmt.Errorf("%w: date %s is not in the future", ErrDayNotVisible, day.DateString())
	}
	return nil
}
