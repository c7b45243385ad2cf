package models

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на закрытие интервала мастера
type CreateBlockRequest struct {
	StaffID string
	StartAt time.Time
	EndAt   time.Time
	Reason  *string
}

// ListBlocksRequest фильтр списка блокировок
type ListBlocksRequest struct {
	StaffID *string
	From    *time.Time
	To      *time.Time
}

// Response модели

// BlockResponse блокировка
type BlockResponse struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staffId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.Block) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:        b.ID,
		StaffID:   b.StaffID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(list []*domain.Block) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(list))}
	for _, b := range list {
		if item := FromDomainBlock(b); item != nil {
			resp.Blocks = append(resp.Blocks, *item)
		}
	}
	return resp
}
