package run_overstay_check

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	useCase SweepOverstaysUseCase
	logger  Logger
}

func NewHandler(useCase SweepOverstaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/parking/overstay-check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /parking/overstay-check - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if len(result.Flagged) > 0 {
		h.logger.Info("GET /parking/overstay-check - Flagged %d sessions", len(result.Flagged))
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResult(result))
}
