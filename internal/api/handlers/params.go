package handlers

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ParseDate парсит дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// ParseHairAttributes собирает атрибуты волос из необязательных параметров.
// Возвращает nil, если не передан ни один из параметров.
func ParseHairAttributes(length, density string) (*domain.HairAttributes, error) {
	if length == "" && density == "" {
		return nil, nil
	}
	if length == "" || density == "" {
		return nil, errors.New("hairLength and hairDensity must be passed together")
	}

	l, err := domain.ParseHairLength(length)
	if err != nil {
		return nil, err
	}
	d, err := domain.ParseHairDensity(density)
	if err != nil {
		return nil, err
	}

	return &domain.HairAttributes{Length: l, Density: d}, nil
}
