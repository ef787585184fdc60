package set_slot_maintenance

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgSlotNotFound       = "слот не найден"
	msgSlotOccupied       = "слот занят, сначала оформите выезд"
	msgReasonRequired     = "укажите причину перевода на обслуживание"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/parking/slots/{slotNumber}/maintenance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotNumber := vars["slotNumber"]

	var req models.SetMaintenanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /parking/slots/%s/maintenance - Invalid request body: %v", slotNumber, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SlotNumber = slotNumber

	result, err := h.service.SetMaintenance(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /parking/slots/%s/maintenance - Invalid input: %v", slotNumber, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrReasonRequired):
			h.logger.Warn("PUT /parking/slots/%s/maintenance - Reason required", slotNumber)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /parking/slots/%s/maintenance - Slot not found", slotNumber)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotOccupied):
			h.logger.Warn("PUT /parking/slots/%s/maintenance - Slot occupied", slotNumber)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		default:
			h.logger.Error("PUT /parking/slots/%s/maintenance - Failed: %v", slotNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /parking/slots/%s/maintenance - Slot now %s", slotNumber, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
