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
	"aquaorders/internal/schedule/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type ScheduleService interface {
	AvailableWeeks(ctx context.Context) ([]string, error)
	GroupByCustomer(ctx context.Context, week string) (*service.WeekSchedule, error)
	ChangeDeliveryDate(ctx context.Context, orderID uint, newDate time.Time) (*domain.Order, error)
	UpdateShipQty(ctx context.Context, orderID uint, shipQty int) (*domain.Order, error)
}

type ScheduleController struct {
	service ScheduleService
	logger  *zap.Logger
}

func NewScheduleController(svc ScheduleService, logger *zap.Logger) *ScheduleController {
	return &ScheduleController{
		service: svc,
		logger:  logger,
	}
}

func (c *ScheduleController) AvailableWeeks(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	weeks, err := c.service.AvailableWeeks(r.Context())
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	if weeks == nil {
		weeks = []string{}
	}
	c.writeJSON(w, http.StatusOK, weeks)
}

func (c *ScheduleController) WeekSchedule(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	week := chi.URLParam(r, "week")
	sched, err := c.service.GroupByCustomer(r.Context(), week)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	resp := dto.WeekScheduleResponse{
		Week:      sched.Week,
		Customers: make([]dto.CustomerGroupDTO, 0, len(sched.Customers)),
		Shipped:   make([]dto.OrderDTO, 0, len(sched.Shipped)),
	}
	for _, customer := range sched.Customers {
		group := dto.CustomerGroupDTO{Customer: customer}
		for _, order := range sched.ByCustomer[customer] {
			group.Orders = append(group.Orders, dto.NewOrderDTO(order))
		}
		resp.Customers = append(resp.Customers, group)
	}
	for _, order := range sched.Shipped {
		resp.Shipped = append(resp.Shipped, dto.NewOrderDTO(order))
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *ScheduleController) ChangeDeliveryDate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.ChangeDeliveryDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body"), logger)
		return
	}

	newDate, err := time.Parse(dateLayout, req.DeliveryDate)
	if err != nil {
		c.writeError(w, traceID, apperrors.NewValidationError("invalid delivery date", apperrors.ValidationDetail{
			Field:   "deliveryDate",
			Message: "deliveryDate must be formatted YYYY-MM-DD",
		}), logger)
		return
	}

	order, err := c.service.ChangeDeliveryDate(r.Context(), orderID, newDate)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderDTO(*order))
}

func (c *ScheduleController) UpdateShipQty(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.orderIDParam(w, r, traceID, logger)
	if !ok {
		return
	}

	var req dto.UpdateShipQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, apperrors.NewValidationError("invalid JSON body"), logger)
		return
	}

	order, err := c.service.UpdateShipQty(r.Context(), orderID, req.ShipQty)
	if err != nil {
		c.writeError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewOrderDTO(*order))
}

func (c *ScheduleController) orderIDParam(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (uint, bool) {
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

func (c *ScheduleController) writeError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "an unexpected error occurred"
	var details []apperrors.ValidationDetail

	if ve, ok := apperrors.IsValidationError(err); ok {
		status, code, message, details = http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details
	} else if _, ok := apperrors.IsNotFoundError(err); ok {
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
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

func (c *ScheduleController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
