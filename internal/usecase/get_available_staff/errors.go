package get_available_staff

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_staff: service not found")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_available_staff: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата дальше MaxAdvanceDays
	ErrDateTooFarInFuture = errors.New("get_available_staff: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_staff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_staff: internal error")
)
