package bookings

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь запрашивает чужие записи, не будучи администратором
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
