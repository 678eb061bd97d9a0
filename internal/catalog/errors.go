package catalog

import (
	"errors"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrConfiguration базовая ошибка конфигурации каталога (фатальна для запроса, не ретраится)
	ErrConfiguration = errors.New("catalog: configuration error")

	// ErrProcedureNotFound неизвестный идентификатор процедуры
	ErrProcedureNotFound = errors.Join(ErrConfiguration, errors.New("catalog: procedure not found"))

	// ErrDurationNotConfigured нет длительности для пары (густота, длина)
	ErrDurationNotConfigured = errors.Join(ErrConfiguration, domain.ErrDurationNotConfigured)

	// ErrInvalidCatalog каталог не прошел проверку при построении
	ErrInvalidCatalog = errors.Join(ErrConfiguration, errors.New("catalog: invalid procedure definition"))
)
