package domain

import "time"

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPendingPayment AppointmentStatus = "PENDING_PAYMENT"
	StatusConfirmed      AppointmentStatus = "CONFIRMED"
	StatusCancelled      AppointmentStatus = "CANCELLED"
	StatusDone           AppointmentStatus = "DONE"
	StatusNoShow         AppointmentStatus = "NO_SHOW"
)

// Appointment запись клиента к мастеру
// EndAt = StartAt + длительность опции + буфер
type Appointment struct {
	ID              string
	StaffID         string
	ServiceOptionID string
	ClientID        string
	StartAt         time.Time
	EndAt           time.Time
	Status          AppointmentStatus
	Notes           *string
	InternalNotes   *string

	// Денормализованные данные для ответа клиенту
	PriceCents   int
	DepositCents int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCalendar возвращает true, если запись занимает время мастера
func (a *Appointment) OccupiesCalendar() bool {
	return a.Status.Occupies()
}

// Interval интервал, который запись занимает в календаре
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartAt, End: a.EndAt}
}

// AppointmentDetails запись вместе с услугой, опцией, мастером и клиентом
type AppointmentDetails struct {
	Appointment
	ServiceName string
	OptionType  OptionType
	StaffName   string
	ClientName  string
	ClientPhone string
}

// AppointmentsFilter фильтр для списка записей в CRM
type AppointmentsFilter struct {
	From    *time.Time // начало периода (включительно)
	To      *time.Time // конец периода (не включительно)
	StaffID *string
	Status  *AppointmentStatus
}
