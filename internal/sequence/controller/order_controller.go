package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"aquaorders/internal/domain"
	"aquaorders/internal/dto"
	apperrors "aquaorders/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmitOrderUseCase interface {
	SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*domain.Order, error)
	AllocateRange(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error)
}

type OrderController struct {
	useCase SubmitOrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase SubmitOrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body"), logger)
		return
	}

	order, err := c.useCase.SubmitOrder(r.Context(), req)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewOrderDTO(*order))
}

func (c *OrderController) AllocateRange(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.AllocateRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body"), logger)
		return
	}

	rng, err := c.useCase.AllocateRange(r.Context(), domain.Category(req.Category), req.Quantity)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.AllocationResponse{
		Category: string(rng.Category),
		First:    rng.First,
		Last:     rng.Last,
		Display:  rng.Display(),
	})
}

func (c *OrderController) writeError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "an unexpected error occurred"
	var details []apperrors.ValidationDetail

	if ve, ok := apperrors.IsValidationError(err); ok {
		status, code, message, details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details
	} else if _, ok := apperrors.IsNotFoundError(err); ok {
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
	} else if _, ok := apperrors.IsConfigurationError(err); ok {
		code, message = "CONFIGURATION_ERROR", err.Error()
		logger.Error("configuration error", zap.Error(err))
	} else if _, ok := apperrors.IsConflictError(err); ok {
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	} else {
		logger.Error("unexpected error", zap.Error(err))
	}

	c.writeJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
