package domain

import "time"

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Conflicts проверяет пересечение кандидата с занятым интервалом
// Касание границ не считается пересечением, но совпадение начала считается конфликтом всегда
func (c Interval) Conflicts(busy Interval) bool {
	if c.Start.Before(busy.End) && c.End.After(busy.Start) {
		return true
	}
	return c.Start.Equal(busy.Start)
}

// HasConflict true, если кандидат конфликтует хотя бы с одним интервалом
func HasConflict(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Conflicts(b) {
			return true
		}
	}
	return false
}

// AppointmentIntervals интервалы записей, занимающих календарь
func AppointmentIntervals(appointments []*Appointment) []Interval {
	result := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		if a.OccupiesCalendar() {
			result = append(result, a.Interval())
		}
	}
	return result
}

// BlockIntervals интервалы блокировок
func BlockIntervals(blocks []*Block) []Interval {
	result := make([]Interval, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, b.Interval())
	}
	return result
}
