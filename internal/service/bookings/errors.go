package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("bookings: booking is already cancelled")

	// ErrCannotCancel возвращается, когда бронирование уже завершено или клиент не пришёл
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrSlotConflict возвращается, когда восстановление отменённой записи пересекается с другой
	ErrSlotConflict = errors.New("bookings: slot is taken by another booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
