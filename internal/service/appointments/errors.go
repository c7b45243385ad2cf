package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInvalidTransition возвращается, когда переход между статусами запрещен
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrSlotNotAvailable возвращается, когда запись нельзя вернуть в календарь из-за пересечения
	ErrSlotNotAvailable = errors.New("appointments: slot is not available")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
