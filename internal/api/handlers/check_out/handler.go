package check_out

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	checkOut "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "требуется numberPlate или sessionId"
	msgSessionNotFound    = "открытая сессия не найдена"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/parking/check-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /parking/check-out - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, checkOut.ErrInvalidInput):
			h.logger.Warn("PUT /parking/check-out - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkOut.ErrSessionNotFound):
			h.logger.Warn("PUT /parking/check-out - Session not found")
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("PUT /parking/check-out - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /parking/check-out - Session closed: session_id=%d, plate=%s, amount=%.2f",
		result.SessionID, result.NumberPlate, result.BillingAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
