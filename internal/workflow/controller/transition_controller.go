package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"aquaorders/internal/domain"
	"aquaorders/internal/dto"
	apperrors "aquaorders/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplyTransitionUseCase interface {
	ApplyTransition(ctx context.Context, orderID uint, targetStatusID string, actor string, reason string) (*domain.Order, error)
	ValidStatuses(ctx context.Context, orderID uint) ([]domain.StatusDefinition, error)
	ListHistory(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error)
}

type TransitionController struct {
	useCase ApplyTransitionUseCase
	logger  *zap.Logger
}

func NewTransitionController(useCase ApplyTransitionUseCase, logger *zap.Logger) *TransitionController {
	return &TransitionController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *TransitionController) ApplyTransition(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body"), logger)
		return
	}

	order, err := c.useCase.ApplyTransition(r.Context(), orderID, req.StatusID, req.ChangedBy, req.Reason)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderDTO(*order))
}

func (c *TransitionController) ValidStatuses(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	defs, err := c.useCase.ValidStatuses(r.Context(), orderID)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	statuses := make([]dto.StatusDefinitionDTO, 0, len(defs))
	for _, def := range defs {
		statuses = append(statuses, dto.NewStatusDefinitionDTO(def))
	}
	c.writeJSON(w, http.StatusOK, statuses)
}

func (c *TransitionController) ListHistory(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	entries, err := c.useCase.ListHistory(r.Context(), orderID)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	history := make([]dto.HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		history = append(history, dto.NewHistoryEntryDTO(entry))
	}
	c.writeJSON(w, http.StatusOK, history)
}

func (c *TransitionController) orderIDParam(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (uint, bool) {
	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		logger.Warn("invalid orderId in path", zap.String("orderId", orderIDStr))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		}), logger)
		return 0, false
	}
	return uint(orderID), true
}

func (c *TransitionController) writeError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "an unexpected error occurred"
	var details []apperrors.ValidationDetail

	if ve, ok := apperrors.IsValidationError(err); ok {
		status, code, message, details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details
	} else if _, ok := apperrors.IsNotFoundError(err); ok {
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
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

func (c *TransitionController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
