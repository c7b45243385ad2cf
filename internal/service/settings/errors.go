package settings

import "errors"

var (
	// ErrConfigNotFound возвращается, когда настройки еще не созданы командой provision
	ErrConfigNotFound = errors.New("settings: scheduling config not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
