package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// ErrInvalidWorkingHours некорректный график работы
var ErrInvalidWorkingHours = errors.New("domain: invalid working hours")

// WorkingHours рабочее окно мастера в день недели (0 = воскресенье ... 6 = суббота)
type WorkingHours struct {
	ID        string
	StaffID   string
	Weekday   int
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
}

// Validate проверяет день недели, формат времени и порядок начала и конца
func (w *WorkingHours) Validate() error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be in 0..6, got %d", ErrInvalidWorkingHours, w.Weekday)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidWorkingHours, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidWorkingHours, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidWorkingHours, w.StartTime, w.EndTime)
	}
	return nil
}

// NormalizeWeek проверяет график на неделю, отбрасывает неактивные записи
// и запрещает несколько записей на один день недели
func NormalizeWeek(staffID string, hours []WorkingHours) ([]WorkingHours, error) {
	seen := make(map[int]bool, 7)
	result := make([]WorkingHours, 0, len(hours))

	for _, h := range hours {
		if !h.Active {
			continue
		}
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if seen[h.Weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidWorkingHours, h.Weekday)
		}
		seen[h.Weekday] = true
		h.StaffID = staffID
		result = append(result, h)
	}

	return result, nil
}
