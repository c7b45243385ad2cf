package get_available_slots

import (
	"errors"
	"net/url"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

var errMissingOption = errors.New("serviceOptionId or serviceId is required")

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	StaffID         string   `json:"staffId"`
	ServiceOptionID string   `json:"serviceOptionId"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}
	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(types.DateFormat),
		StaffID:         resp.StaffID,
		ServiceOptionID: resp.ServiceOptionID,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(q url.Values) (*getAvailableSlots.Request, error) {
	optionID := q.Get("serviceOptionId")
	serviceID := q.Get("serviceId")
	if optionID == "" && serviceID == "" {
		return nil, errMissingOption
	}

	for _, id := range []string{optionID, serviceID} {
		if id == "" {
			continue
		}
		if err := handlers.ValidateID(id); err != nil {
			return nil, err
		}
	}

	date, err := types.ParseDate(q.Get("date"))
	if err != nil {
		return nil, err
	}

	staffID, err := handlers.OptionalID(q, "staffId")
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceOptionID: optionID,
		ServiceID:       serviceID,
		Date:            date,
		StaffID:         staffID,
	}, nil
}
