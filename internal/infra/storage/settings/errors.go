package settings

import "errors"

var (
	// ErrConfigNotFound возвращается, когда настройки расписания не созданы
	ErrConfigNotFound = errors.New("settings.repository: scheduling config not found")

	// ErrConfigExists возвращается при попытке создать вторую строку настроек
	ErrConfigExists = errors.New("settings.repository: scheduling config already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
