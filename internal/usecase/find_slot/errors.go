package find_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_slot: invalid input data")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("find_slot: user not found")

	// ErrNotVerified возвращается, когда клиент еще не прошел проверку
	ErrNotVerified = errors.New("find_slot: client is not verified")

	// ErrForbidden возвращается, когда клиент указывает атрибуты волос за другого, не будучи администратором
	ErrForbidden = errors.New("find_slot: operation allowed for admins only")

	// ErrConfiguration возвращается при неизвестной процедуре или незаполненной таблице длительностей
	ErrConfiguration = errors.New("find_slot: configuration error")

	// ErrDayNotFound возвращается, когда рабочий день не создан
	ErrDayNotFound = errors.New("find_slot: day not found")

	// ErrDayNotVisible возвращается, когда день закрыт для записи клиентов
	ErrDayNotVisible = errors.New("find_slot: day is not open for booking")

	// ErrProposalOutdated возвращается при подтверждении, если предложенное время уже неактуально
	ErrProposalOutdated = errors.New("find_slot: proposed time is outdated")

	// ErrConsistency возвращается при нарушении инвариантов дня (нет рабочих часов)
	ErrConsistency = errors.New("find_slot: day consistency violation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_slot: internal error")
)
