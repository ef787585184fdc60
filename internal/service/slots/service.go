package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

// Service сервис для администрирования парковочных слотов
type Service struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateSlots создает слоты пакетом. Дубликаты номеров не прерывают
// обработку: уникальные слоты создаются, дубликаты перечисляются
// в ответе (частичный успех, как у insertMany без ordered)
func (s *Service) CreateSlots(ctx context.Context, req *models.CreateSlotsRequest) (*models.CreateSlotsResponse, error) {
	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: slots list is empty", ErrInvalidInput)
	}

	inputs, err := s.validateSlotInputs(req.Slots)
	if err != nil {
		s.logger.Warn("CreateSlots: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("CreateSlots: creating %d slots", len(inputs))

	resp := &models.CreateSlotsResponse{}
	for _, slot := range inputs {
		created, err := s.slotRepo.Create(ctx, slot)
		if err != nil {
			if errors.Is(err, slotRepo.ErrDuplicateSlotNumber) {
				resp.Duplicates = append(resp.Duplicates, slot.SlotNumber)
				continue
			}
			s.logger.Error("CreateSlots: failed to create slot=%s: %v", slot.SlotNumber, err)
			return nil, fmt.Errorf("%w: CreateSlots - repository error: %v", ErrInternal, err)
		}
		resp.Created = append(resp.Created, *models.FromDomainSlot(created))
	}

	s.logger.Info("CreateSlots: created %d slots, %d duplicates", len(resp.Created), len(resp.Duplicates))
	return resp, nil
}

// ListSlots возвращает все слоты, отсортированные по этажу и номеру
func (s *Service) ListSlots(ctx context.Context) (*models.SlotListResponse, error) {
	slots, err := s.slotRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlotList(slots), nil
}

// SetMaintenance переводит слот на обслуживание или возвращает в строй.
// Занятый слот менять нельзя: сначала check-out, потом обслуживание.
// При переводе на обслуживание причина обязательна, при возврате
// причина и время начала очищаются
func (s *Service) SetMaintenance(ctx context.Context, req *models.SetMaintenanceRequest) (*models.SlotResponse, error) {
	slotNumber := domain.NormalizeSlotNumber(req.SlotNumber)

	target := domain.SlotStatus(strings.ToUpper(req.TargetStatus))
	if target != domain.SlotStatusMaintenance && target != domain.SlotStatusAvailable {
		return nil, fmt.Errorf("%w: targetStatus must be %s or %s",
			ErrInvalidInput, domain.SlotStatusMaintenance, domain.SlotStatusAvailable)
	}

	if target == domain.SlotStatusMaintenance {
		if req.Reason == nil || *req.Reason == "" {
			return nil, ErrReasonRequired
		}
		if len(*req.Reason) > domain.MaxReasonLength {
			return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
		}
	}

	s.logger.Info("SetMaintenance: slot=%s, target=%s", slotNumber, target)

	var result *domain.ParkingSlot

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetBySlotNumber(txCtx, slotNumber)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("SetMaintenance: slot=%s not found", slotNumber)
				return ErrSlotNotFound
			}
			s.logger.Error("SetMaintenance: failed to get slot=%s: %v", slotNumber, err)
			return fmt.Errorf("%w: SetMaintenance - repository error: %v", ErrInternal, err)
		}

		if slot.IsOccupied() {
			s.logger.Warn("SetMaintenance: slot=%s is occupied", slotNumber)
			return ErrSlotOccupied
		}

		switch target {
		case domain.SlotStatusMaintenance:
			now := s.timeProvider.Now()
			if err := s.slotRepo.SetMaintenance(txCtx, slot.ID, *req.Reason, now); err != nil {
				s.logger.Error("SetMaintenance: failed to set maintenance for slot=%s: %v", slotNumber, err)
				return fmt.Errorf("%w: SetMaintenance - repository error: %v", ErrInternal, err)
			}
			slot.Status = domain.SlotStatusMaintenance
			slot.MaintenanceReason = req.Reason
			slot.MaintenanceStartTime = &now

		case domain.SlotStatusAvailable:
			if err := s.slotRepo.ClearMaintenance(txCtx, slot.ID); err != nil {
				s.logger.Error("SetMaintenance: failed to clear maintenance for slot=%s: %v", slotNumber, err)
				return fmt.Errorf("%w: SetMaintenance - repository error: %v", ErrInternal, err)
			}
			slot.Status = domain.SlotStatusAvailable
			slot.MaintenanceReason = nil
			slot.MaintenanceStartTime = nil
		}

		result = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("SetMaintenance: slot=%s now %s", slotNumber, result.Status)
	return models.FromDomainSlot(result), nil
}

// validateSlotInputs проверяет и конвертирует входные описания слотов
func (s *Service) validateSlotInputs(inputs []models.SlotInput) ([]*domain.ParkingSlot, error) {
	out := make([]*domain.ParkingSlot, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for i, in := range inputs {
		slotNumber := domain.NormalizeSlotNumber(in.SlotNumber)
		if !domain.IsValidSlotNumber(slotNumber) {
			return nil, fmt.Errorf("%w: slots[%d]: invalid slot number format %q", ErrInvalidInput, i, in.SlotNumber)
		}

		slotType := domain.SlotType(strings.ToUpper(in.SlotType))
		if !slotType.IsValid() {
			return nil, fmt.Errorf("%w: slots[%d]: invalid slot type %q", ErrInvalidInput, i, in.SlotType)
		}

		if in.Floor == "" {
			return nil, fmt.Errorf("%w: slots[%d]: floor is required", ErrInvalidInput, i)
		}

		// Дубликат внутри самого запроса — ошибка валидации, а не частичный успех
		if _, ok := seen[slotNumber]; ok {
			return nil, fmt.Errorf("%w: slots[%d]: duplicate slot number %q in request", ErrInvalidInput, i, slotNumber)
		}
		seen[slotNumber] = struct{}{}

		out = append(out, &domain.ParkingSlot{
			SlotNumber:   slotNumber,
			Floor:        in.Floor,
			SlotType:     slotType,
			Status:       domain.SlotStatusAvailable,
			HasCharger:   slotType == domain.SlotTypeEV,
			IsAccessible: slotType == domain.SlotTypeHandicapAccessible,
		})
	}

	return out, nil
}
