package get_billing_summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/billing"
	"github.com/m04kA/SMC-ParkingService/internal/service/billing/models"
)

const (
	msgInvalidPeriod     = "некорректный период: period=today|week|month либо startDate и endDate в формате YYYY-MM-DD"
	msgInvalidPagination = "некорректные параметры пагинации"
)

type Handler struct {
	service BillingService
	logger  Logger
}

func NewHandler(service BillingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/billing/summary?period=today|week|month&startDate=...&endDate=...&page=1&limit=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /billing/summary - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	result, err := h.service.GetSummary(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidPeriod):
			h.logger.Warn("GET /billing/summary - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, billing.ErrInvalidInput):
			h.logger.Warn("GET /billing/summary - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPagination)

		default:
			h.logger.Error("GET /billing/summary - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery разбирает query-параметры в модель сервиса
func parseQuery(r *http.Request) (*models.SummaryRequest, error) {
	q := r.URL.Query()
	req := &models.SummaryRequest{}

	if v := q.Get("period"); v != "" {
		req.Period = &v
	}
	if v := q.Get("startDate"); v != "" {
		req.StartDate = &v
	}
	if v := q.Get("endDate"); v != "" {
		req.EndDate = &v
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
