package create_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше MaxAdvanceDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда время начала уже прошло или попадает в окно уведомления
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidTimeFormat возвращается, когда время начала не в формате HH:MM
	ErrInvalidTimeFormat = errors.New("create_booking: invalid time format")

	// ErrInvalidTimeSlot возвращается, когда услуга заканчивается после полуночи
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrStaffNotWorking возвращается, когда у мастера нет рабочих часов в этот день
	ErrStaffNotWorking = errors.New("create_booking: staff does not work on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrBreakOverlap возвращается, когда интервал пересекает перерыв мастера
	ErrBreakOverlap = errors.New("create_booking: slot overlaps staff break")

	// ErrSlotConflict возвращается, когда интервал пересекается с активным бронированием.
	// Клиенту нужно заново запросить свободные слоты.
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrServiceNotOffered возвращается, когда мастер не оказывает эту услугу
	ErrServiceNotOffered = errors.New("create_booking: staff does not offer this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
