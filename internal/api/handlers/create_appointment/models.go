package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	createAppointment "github.com/m04kA/salon-booking-service/internal/usecase/create_appointment"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// ClientRequest контакты клиента
type ClientRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceOptionID string        `json:"serviceOptionId"`
	StaffID         *string       `json:"staffId,omitempty"`
	Date            string        `json:"date"` // "2026-05-15"
	Time            string        `json:"time"` // "10:30"
	Client          ClientRequest `json:"client"`
	Notes           *string       `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	StaffID         string    `json:"staffId"`
	ServiceName     string    `json:"serviceName"`
	OptionType      string    `json:"optionType"`
	RequiresDeposit bool      `json:"requiresDeposit"`
	DepositCents    int       `json:"depositCents"`
	TotalCents      int       `json:"totalCents"`
}

type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, &parseError{field: "date", err: err}
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, &parseError{field: "time", err: err}
	}

	if err := handlers.ValidateID(r.ServiceOptionID); err != nil {
		return nil, &parseError{field: "serviceOptionId", err: err}
	}
	if r.StaffID != nil {
		if err := handlers.ValidateID(*r.StaffID); err != nil {
			return nil, &parseError{field: "staffId", err: err}
		}
	}

	return &createAppointment.Request{
		ServiceOptionID: r.ServiceOptionID,
		StaffID:         r.StaffID,
		Date:            date,
		Time:            startTime,
		Client: createAppointment.ClientInfo{
			Name:  r.Client.Name,
			Phone: r.Client.Phone,
			Email: r.Client.Email,
		},
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.AppointmentID,
		Status:          resp.Status,
		StartAt:         resp.StartAt,
		EndAt:           resp.EndAt,
		StaffID:         resp.StaffID,
		ServiceName:     resp.ServiceName,
		OptionType:      resp.OptionType,
		RequiresDeposit: resp.RequiresDeposit,
		DepositCents:    resp.DepositCents,
		TotalCents:      resp.TotalCents,
	}
}
