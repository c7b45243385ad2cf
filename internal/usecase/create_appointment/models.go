package create_appointment

import (
	"time"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// ClientInfo контакты клиента
type ClientInfo struct {
	Name  string
	Phone string  // не короче 10 символов
	Email *string // опционально
}

// Request модель запроса на создание записи
type Request struct {
	ServiceOptionID string
	StaffID         *string          // если не указан, берется мастер по умолчанию
	Date            time.Time        // календарная дата
	Time            types.TimeString // "HH:mm" в часовом поясе салона
	Client          ClientInfo
	Notes           *string
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID   string
	Status          string
	StartAt         time.Time
	EndAt           time.Time
	StaffID         string
	ServiceName     string
	OptionType      string
	RequiresDeposit bool
	DepositCents    int
	TotalCents      int
}
