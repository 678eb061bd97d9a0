package day

import "errors"

var (
	// ErrDayNotFound возвращается, когда рабочий день не найден
	ErrDayNotFound = errors.New("day.repository: day not found")

	// ErrDayAlreadyExists возвращается при повторном создании дня на ту же дату
	ErrDayAlreadyExists = errors.New("day.repository: day already exists")

	// ErrSlotNotFound возвращается, когда свободный слот с указанным началом не найден
	ErrSlotNotFound = errors.New("day.repository: slot not found")

	// ErrSerialization возвращается, когда postgres отменил операцию из-за конкурентной записи в день
	ErrSerialization = errors.New("day.repository: concurrent update")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("day.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("day.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("day.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("day.repository: failed to scan row")
)
