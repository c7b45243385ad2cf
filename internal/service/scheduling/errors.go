package scheduling

import "errors"

var (
	// ErrServiceUnavailable опция или услуга не найдена, неактивна или имеет нулевую длительность
	ErrServiceUnavailable = errors.New("scheduling: service option unavailable")

	// ErrStaffUnavailable указанный мастер не найден или неактивен
	ErrStaffUnavailable = errors.New("scheduling: staff unavailable")

	// ErrNoActiveStaff в салоне нет ни одного активного мастера
	ErrNoActiveStaff = errors.New("scheduling: no active staff")

	// ErrConfigMissing настройки расписания не созданы (нужно выполнить provision)
	ErrConfigMissing = errors.New("scheduling: scheduling config missing")

	// ErrInvalidTimezone часовой пояс из настроек не загружается
	ErrInvalidTimezone = errors.New("scheduling: invalid timezone")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("scheduling: internal error")
)
