package models

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение записей для CRM
type ListAppointmentsRequest struct {
	From    *time.Time // начало периода (включительно)
	To      *time.Time // конец периода (не включительно)
	StaffID *string
	Status  *string
}

// UpdateAppointmentRequest запрос на изменение записи администратором
// Все поля опциональны, но хотя бы одно должно быть передано
type UpdateAppointmentRequest struct {
	Status        *string
	InternalNotes *string
}

// IsEmpty true, если ни одно поле не передано
func (r *UpdateAppointmentRequest) IsEmpty() bool {
	return r.Status == nil && r.InternalNotes == nil
}

// Response модели

// AppointmentResponse запись с денормализованными данными услуги, мастера и клиента
type AppointmentResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	StaffID         string    `json:"staffId"`
	StaffName       string    `json:"staffName"`
	ServiceOptionID string    `json:"serviceOptionId"`
	ServiceName     string    `json:"serviceName"`
	OptionType      string    `json:"optionType"`
	ClientName      string    `json:"clientName"`
	ClientPhone     string    `json:"clientPhone"`
	PriceCents      int       `json:"priceCents"`
	DepositCents    int       `json:"depositCents"`
	Notes           *string   `json:"notes,omitempty"`
	InternalNotes   *string   `json:"internalNotes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainDetails конвертирует domain модель в DTO
func FromDomainDetails(d *domain.AppointmentDetails) *AppointmentResponse {
	if d == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              d.ID,
		Status:          string(d.Status),
		StartAt:         d.StartAt,
		EndAt:           d.EndAt,
		StaffID:         d.StaffID,
		StaffName:       d.StaffName,
		ServiceOptionID: d.ServiceOptionID,
		ServiceName:     d.ServiceName,
		OptionType:      string(d.OptionType),
		ClientName:      d.ClientName,
		ClientPhone:     d.ClientPhone,
		PriceCents:      d.PriceCents,
		DepositCents:    d.DepositCents,
		Notes:           d.Notes,
		InternalNotes:   d.InternalNotes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// FromDomainDetailsList конвертирует список domain моделей в DTO
func FromDomainDetailsList(list []*domain.AppointmentDetails) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}

	for _, d := range list {
		if item := FromDomainDetails(d); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
