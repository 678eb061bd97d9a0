package commit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("commit_booking: user not found")

	// ErrNotVerified возвращается, когда клиент еще не прошел проверку
	ErrNotVerified = errors.New("commit_booking: client is not verified")

	// ErrForbidden возвращается, когда клиент указывает атрибуты волос за другого, не будучи администратором
	ErrForbidden = errors.New("commit_booking: operation allowed for admins only")

	// ErrConfiguration возвращается при неизвестной процедуре или незаполненной таблице длительностей
	ErrConfiguration = errors.New("commit_booking: configuration error")

	// ErrDayNotFound возвращается, когда рабочий день не создан
	ErrDayNotFound = errors.New("commit_booking: day not found")

	// ErrDayNotVisible возвращается, когда день закрыт для записи клиентов
	ErrDayNotVisible = errors.New("commit_booking: day is not open for booking")

	// ErrBookingConflict возвращается, когда выбранное окно уже занято или изменилось.
	// Клиент должен заново запросить свободное время.
	ErrBookingConflict = errors.New("commit_booking: slot was taken, search again")

	// ErrConsistency возвращается при нарушении инвариантов дня
	ErrConsistency = errors.New("commit_booking: day consistency violation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
