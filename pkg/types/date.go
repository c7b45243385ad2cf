package types

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat формат календарной даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// ErrInvalidDateFormat возвращается, когда строка не является датой в формате YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date format")

// ParseDate парсит календарную дату. Результат находится в UTC и несет только год, месяц и день.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return d, nil
}

// DayBounds возвращает границы календарного дня date в локации loc: [начало дня, начало следующего дня)
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start, end
}

// Weekday возвращает день недели календарной даты (0 = воскресенье ... 6 = суббота)
func Weekday(date time.Time) int {
	y, m, d := date.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday())
}

// AddMinutes сдвигает момент времени на n минут в абсолютном времени
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}
