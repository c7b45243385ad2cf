package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus статус не входит в перечень
	ErrUnknownStatus = errors.New("domain: unknown appointment status")

	// ErrInvalidTransition переход между статусами запрещен
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)

// OccupyingStatuses статусы, при которых запись занимает календарь мастера
var OccupyingStatuses = []AppointmentStatus{
	StatusPendingPayment,
	StatusConfirmed,
}

// transitionMap целевой статус -> статусы, из которых в него можно перейти
// PENDING_PAYMENT выставляется только при создании записи
var transitionMap = map[AppointmentStatus][]AppointmentStatus{
	StatusConfirmed: {StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusDone, StatusNoShow},
	StatusCancelled: {StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusDone, StatusNoShow},
	StatusDone:      {StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusDone, StatusNoShow},
	StatusNoShow:    {StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusDone, StatusNoShow},
}

// ParseStatus разбирает строку статуса
func ParseStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusDone, StatusNoShow:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Occupies true для PENDING_PAYMENT и CONFIRMED
func (s AppointmentStatus) Occupies() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

// InitialStatus статус новой записи: с депозитом ожидает оплаты, без депозита сразу подтверждена
func InitialStatus(depositCents int) AppointmentStatus {
	if depositCents > 0 {
		return StatusPendingPayment
	}
	return StatusConfirmed
}

// ValidateTransition единственная точка проверки смены статуса записи
func ValidateTransition(from, to AppointmentStatus) error {
	allowed, ok := transitionMap[to]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	for _, status := range allowed {
		if status == from {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Reoccupies true, если переход возвращает запись в календарь и нужна повторная проверка пересечений
func Reoccupies(from, to AppointmentStatus) bool {
	return !from.Occupies() && to.Occupies()
}
