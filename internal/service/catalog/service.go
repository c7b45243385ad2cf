package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListActive активные услуги с активными опциями, опции в порядке APPLICATION, MAINTENANCE
func (s *Service) ListActive(ctx context.Context) (*models.ServiceListResponse, error) {
	list, err := s.catalogRepo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d services", len(list))
	return models.FromDomainServices(list), nil
}
