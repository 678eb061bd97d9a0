package userservice

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Profile профиль клиента салона из UserService
type Profile struct {
	ID          int64  `json:"id"`
	HairLength  string `json:"hair_length"`  // SHORT, MEDIUM, LONG
	HairDensity string `json:"hair_density"` // THIN, MEDIUM, THICK
	IsVerified  bool   `json:"is_verified"`  // фото волос проверено администратором
	IsAdmin     bool   `json:"is_admin"`
}

// ToDomain преобразует профиль в доменную модель клиента
func (p *Profile) ToDomain() (*domain.Client, error) {
	client := &domain.Client{
		ID:         p.ID,
		IsVerified: p.IsVerified,
		IsAdmin:    p.IsAdmin,
	}

	// Неверифицированный клиент может еще не указать атрибуты волос
	if p.HairLength == "" && p.HairDensity == "" && !p.IsVerified {
		return client, nil
	}

	length, err := domain.ParseHairLength(p.HairLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	density, err := domain.ParseHairDensity(p.HairDensity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	client.HairLength = length
	client.HairDensity = density
	return client, nil
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
