package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeFormat = errors.New("invalid time string format")

var timeStringPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// TimeString время суток на настенных часах в формате "HH:MM" (например, "09:30")
type TimeString string

// NewTimeStringFromString парсит и валидирует строку формата HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeString возвращает время суток момента t в его собственной локации
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// Validate проверяет формат и диапазон значения (00:00 - 23:59)
func (t TimeString) Validate() error {
	if !timeStringPattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	h, _ := strconv.Atoi(string(t[:2]))
	m, _ := strconv.Atoi(string(t[3:]))
	if h > 23 || m > 59 {
		return fmt.Errorf("%w: %q out of range", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от полуночи
// Значение должно быть предварительно провалидировано
func (t TimeString) Minutes() int {
	h, _ := strconv.Atoi(string(t[:2]))
	m, _ := strconv.Atoi(string(t[3:]))
	return h*60 + m
}

// IsBefore сравнивает два времени суток
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// On возвращает абсолютный момент времени, соответствующий t на календарной дате date в локации loc
// Календарная дата берется из компонентов date (год, месяц, день), локация date игнорируется.
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	if err := t.Validate(); err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	minutes := t.Minutes()
	return time.Date(y, mo, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(trimSeconds(v))
	case []byte:
		*t = TimeString(trimSeconds(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// trimSeconds отрезает секунды у значений колонки типа TIME ("09:00:00" -> "09:00")
func trimSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
