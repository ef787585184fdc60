package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	checkIn "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInput          = "некорректные входные данные"
	msgSessionAlreadyActive  = "у этого госномера уже есть открытая сессия"
	msgNoSlotAvailable       = "нет свободных слотов для этого типа ТС"
	msgManualSlotNotFound    = "указанный слот не найден"
	msgManualSlotUnavailable = "указанный слот недоступен"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/parking/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var operatorID *string
	if id, ok := middleware.GetOperatorID(r.Context()); ok {
		operatorID = &id
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(operatorID))
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrInvalidInput):
			h.logger.Warn("POST /parking/check-in - Invalid input: plate=%s, error=%v", req.NumberPlate, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkIn.ErrSessionAlreadyActive):
			h.logger.Warn("POST /parking/check-in - Session already active: plate=%s", req.NumberPlate)
			handlers.RespondError(w, http.StatusConflict, msgSessionAlreadyActive)

		case errors.Is(err, checkIn.ErrNoSlotAvailable):
			h.logger.Warn("POST /parking/check-in - No slot available: plate=%s, type=%s", req.NumberPlate, req.VehicleType)
			handlers.RespondError(w, http.StatusConflict, msgNoSlotAvailable)

		case errors.Is(err, checkIn.ErrManualSlotNotFound):
			h.logger.Warn("POST /parking/check-in - Manual slot not found: plate=%s", req.NumberPlate)
			handlers.RespondNotFound(w, msgManualSlotNotFound)

		case errors.Is(err, checkIn.ErrManualSlotUnavailable):
			h.logger.Warn("POST /parking/check-in - Manual slot unavailable: plate=%s", req.NumberPlate)
			handlers.RespondError(w, http.StatusConflict, msgManualSlotUnavailable)

		default:
			h.logger.Error("POST /parking/check-in - Failed: plate=%s, error=%v", req.NumberPlate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parking/check-in - Session created: session_id=%d, plate=%s, slot=%s",
		result.SessionID, result.NumberPlate, result.AssignedSlotNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
