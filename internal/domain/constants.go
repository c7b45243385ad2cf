package domain

// Ограничения настроек расписания
const (
	MaxSlotMinutes       = 240
	MaxBufferMinutes     = 240
	MaxMinAdvanceMinutes = 10080 // 1 неделя
)

// Ограничения входных данных записи
const (
	MinPhoneLength  = 10
	MaxPhoneLength  = 20
	MaxNameLength   = 120
	MaxNotesLength  = 500
	MaxReasonLength = 200
)

// SchedulingConfigSingletonKey значение уникальной колонки, гарантирующей одну строку настроек
const SchedulingConfigSingletonKey = "default"
