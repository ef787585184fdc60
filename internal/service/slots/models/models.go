package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// SlotInput описание одного создаваемого слота
type SlotInput struct {
	SlotNumber string `json:"slotNumber"`
	Floor      string `json:"floor"`
	SlotType   string `json:"slotType"`
}

// CreateSlotsRequest запрос на создание слотов (одного или пакетом)
type CreateSlotsRequest struct {
	Slots []SlotInput `json:"slots"`
}

// SetMaintenanceRequest запрос на перевод слота на обслуживание и обратно
type SetMaintenanceRequest struct {
	SlotNumber   string  `json:"-"`
	TargetStatus string  `json:"targetStatus"`
	Reason       *string `json:"reason,omitempty"`
}

// Response модели

// SlotResponse представление слота в ответе
type SlotResponse struct {
	ID                   int64      `json:"id"`
	SlotNumber           string     `json:"slotNumber"`
	Floor                string     `json:"floor"`
	SlotType             string     `json:"slotType"`
	Status               string     `json:"status"`
	HasCharger           bool       `json:"hasCharger"`
	IsAccessible         bool       `json:"isAccessible"`
	MaintenanceReason    *string    `json:"maintenanceReason,omitempty"`
	MaintenanceStartTime *time.Time `json:"maintenanceStartTime,omitempty"`
}

// CreateSlotsResponse результат пакетного создания: созданные слоты
// и номера, отклонённые как дубликаты
type CreateSlotsResponse struct {
	Created    []SlotResponse `json:"created"`
	Duplicates []string       `json:"duplicates,omitempty"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует domain слот в response модель
func FromDomainSlot(s *domain.ParkingSlot) *SlotResponse {
	return &SlotResponse{
		ID:                   s.ID,
		SlotNumber:           s.SlotNumber,
		Floor:                s.Floor,
		SlotType:             string(s.SlotType),
		Status:               string(s.Status),
		HasCharger:           s.HasCharger,
		IsAccessible:         s.IsAccessible,
		MaintenanceReason:    s.MaintenanceReason,
		MaintenanceStartTime: s.MaintenanceStartTime,
	}
}

// FromDomainSlotList конвертирует список domain слотов
func FromDomainSlotList(slots []*domain.ParkingSlot) *SlotListResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, *FromDomainSlot(s))
	}
	return &SlotListResponse{Slots: out, Total: len(out)}
}
