package create_block

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model
// startAt/endAt в RFC3339, например "2026-05-15T13:00:00+03:00"
type CreateBlockRequest struct {
	StaffID string    `json:"staffId"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest() *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		StaffID: r.StaffID,
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Reason:  r.Reason,
	}
}
