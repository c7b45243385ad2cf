package get_available_slots

import "time"

// Request модель запроса доступных слотов
type Request struct {
	ServiceOptionID string    // ID опции услуги
	ServiceID       string    // Старый параметр: ID услуги, используется если ServiceOptionID пуст
	Date            time.Time // Календарная дата (используются только год, месяц, день)
	StaffID         *string   // ID мастера (опционально)
}

// Response модель ответа со слотами
type Response struct {
	Date            time.Time
	StaffID         string
	ServiceOptionID string
	Slots           []string // Время начала "HH:mm" в часовом поясе салона, по возрастанию
}
