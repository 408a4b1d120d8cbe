package usecase

import (
	"context"

	"aquaorders/internal/domain"
	apperrors "aquaorders/internal/errors"

	"go.uber.org/zap"
)

type TransitionService interface {
	ApplyTransition(ctx context.Context, orderID uint, targetStatusID string, actor string, reason string) (*domain.Order, error)
	ValidStatuses(ctx context.Context, orderID uint) ([]domain.StatusDefinition, error)
	ListHistory(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error)
}

type ApplyTransitionUseCase struct {
	transitionSvc TransitionService
	logger        *zap.Logger
}

func NewApplyTransitionUseCase(transitionSvc TransitionService, logger *zap.Logger) *ApplyTransitionUseCase {
	return &ApplyTransitionUseCase{
		transitionSvc: transitionSvc,
		logger:        logger,
	}
}

func (uc *ApplyTransitionUseCase) ApplyTransition(
	ctx context.Context,
	orderID uint,
	targetStatusID string,
	actor string,
	reason string,
) (*domain.Order, error) {
	uc.logger.Info("status transition requested",
		zap.Uint("orderId", orderID),
		zap.String("statusId", targetStatusID),
		zap.String("actor", actor),
	)

	var details []apperrors.ValidationDetail
	if targetStatusID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "statusId",
			Message: "statusId is required",
		})
	}
	if actor == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "changedBy",
			Message: "changedBy is required",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return uc.transitionSvc.ApplyTransition(ctx, orderID, targetStatusID, actor, reason)
}

func (uc *ApplyTransitionUseCase) ValidStatuses(ctx context.Context, orderID uint) ([]domain.StatusDefinition, error) {
	return uc.transitionSvc.ValidStatuses(ctx, orderID)
}

func (uc *ApplyTransitionUseCase) ListHistory(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error) {
	return uc.transitionSvc.ListHistory(ctx, orderID)
}
