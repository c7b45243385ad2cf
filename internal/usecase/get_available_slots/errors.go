package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceUnavailable возвращается, когда опция или услуга не найдена или неактивна
	ErrServiceUnavailable = errors.New("get_available_slots: service option unavailable")

	// ErrStaffUnavailable возвращается, когда указанный мастер не найден или неактивен
	ErrStaffUnavailable = errors.New("get_available_slots: staff unavailable")

	// ErrConfigMissing возвращается, когда настройки расписания не созданы
	ErrConfigMissing = errors.New("get_available_slots: scheduling config missing")

	// ErrNoActiveStaff возвращается, когда нет ни одного активного мастера
	ErrNoActiveStaff = errors.New("get_available_slots: no active staff")

	// ErrInvalidTimezone возвращается, когда часовой пояс салона не загружается
	ErrInvalidTimezone = errors.New("get_available_slots: invalid timezone")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
