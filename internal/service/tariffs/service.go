package tariffs

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

// Service сервис чтения тарифных конфигураций
type Service struct {
	pricingRepo  PricingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(pricingRepo PricingRepository, logger Logger) *Service {
	return &Service{
		pricingRepo:  pricingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetActiveConfigs возвращает тарифные конфигурации, действующие сейчас.
// Расчет суммы при этом работает на фиксированных таблицах — конфигурации
// носят справочный характер
func (s *Service) GetActiveConfigs(ctx context.Context) (*models.ConfigListResponse, error) {
	configs, err := s.pricingRepo.ListEffective(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetActiveConfigs: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActiveConfigs - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainConfigs(configs), nil
}
