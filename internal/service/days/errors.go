package days

import "errors"

var (
	// ErrDayNotFound возвращается, когда рабочий день не найден
	ErrDayNotFound = errors.New("day not found")

	// ErrDayAlreadyExists возвращается при повторном создании дня на ту же дату
	ErrDayAlreadyExists = errors.New("day already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
