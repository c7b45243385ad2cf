package models

import "github.com/m04kA/salon-booking-service/internal/domain"

// OptionResponse бронируемая опция услуги
type OptionResponse struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int    `json:"priceCents"`
	DepositCents    int    `json:"depositCents"`
	RequiresDeposit bool   `json:"requiresDeposit"`
}

// ServiceResponse услуга с активными опциями
type ServiceResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Options     []OptionResponse `json:"options"`
}

// ServiceListResponse каталог
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует каталог в DTO
func FromDomainServices(list []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for _, svc := range list {
		item := ServiceResponse{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			Options:     make([]OptionResponse, 0, len(svc.Options)),
		}
		for i := range svc.Options {
			o := &svc.Options[i]
			item.Options = append(item.Options, OptionResponse{
				ID:              o.ID,
				Type:            string(o.Type),
				DurationMinutes: o.DurationMinutes,
				PriceCents:      o.PriceCents,
				DepositCents:    o.DepositCents,
				RequiresDeposit: o.RequiresDeposit(),
			})
		}
		resp.Services = append(resp.Services, item)
	}
	return resp
}
