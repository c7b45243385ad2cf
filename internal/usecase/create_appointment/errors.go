package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceUnavailable возвращается, когда опция или услуга не найдена или неактивна
	ErrServiceUnavailable = errors.New("create_appointment: service option unavailable")

	// ErrStaffUnavailable возвращается, когда указанный мастер не найден или неактивен
	ErrStaffUnavailable = errors.New("create_appointment: staff unavailable")

	// ErrConfigMissing возвращается, когда настройки расписания не созданы
	ErrConfigMissing = errors.New("create_appointment: scheduling config missing")

	// ErrNoActiveStaff возвращается, когда нет ни одного активного мастера
	ErrNoActiveStaff = errors.New("create_appointment: no active staff")

	// ErrInvalidTimezone возвращается, когда часовой пояс салона не загружается
	ErrInvalidTimezone = errors.New("create_appointment: invalid timezone")

	// ErrSlotNotAvailable возвращается, когда слот уже занят, закрыт или слишком близко по времени
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
