package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"aquaorders/internal/domain"
	"aquaorders/internal/errors"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string, statusID string) error
}

type HistoryRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, entry domain.StatusHistoryEntry) (uint, error)
	ListByOrder(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error)
}

type StatusCatalog interface {
	Status(id string) (domain.StatusDefinition, bool)
	ValidStatuses(order domain.Order) []domain.StatusDefinition
}

// TransitionService applies status changes. The order's new status and its
// ledger entry commit in one transaction; a rejected transition touches
// neither.
type TransitionService struct {
	db          TransactionManager
	orderRepo   OrderRepository
	historyRepo HistoryRepository
	catalog     StatusCatalog
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewTransitionService(
	db TransactionManager,
	orderRepo OrderRepository,
	historyRepo HistoryRepository,
	catalog StatusCatalog,
	logger *zap.Logger,
	txTimeout time.Duration,
) *TransitionService {
	return &TransitionService{
		db:          db,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		catalog:     catalog,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

// ValidStatuses returns the definitions selectable for the order: those
// whose applicability sets contain both its order type and its product.
func (s *TransitionService) ValidStatuses(ctx context.Context, orderID uint) ([]domain.StatusDefinition, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.catalog.ValidStatuses(*order), nil
}

func (s *TransitionService) ListHistory(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByOrder(ctx, orderID)
}

func (s *TransitionService) ApplyTransition(
	ctx context.Context,
	orderID uint,
	targetStatusID string,
	actor string,
	reason string,
) (*domain.Order, error) {
	def, ok := s.catalog.Status(targetStatusID)
	if !ok {
		return nil, errors.NewValidationError("unknown status id", errors.ValidationDetail{
			Field:   "statusId",
			Message: "statusId does not match any status definition",
		})
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// The reserved New/Shipped/Cancelled statuses are always reachable;
	// everything else must pass the applicability filter.
	if !def.Reserved() && !def.AppliesTo(order.OrderTypeID, order.ProductID) {
		return nil, errors.NewValidationError("status not applicable to order", errors.ValidationDetail{
			Field:   "statusId",
			Message: "status is not valid for the order's type and product",
		})
	}

	reason = strings.TrimSpace(reason)
	if def.ReasonRequired {
		if reason == "" {
			return nil, errors.NewValidationError("reason required", errors.ValidationDetail{
				Field:   "reason",
				Message: "a reason must be provided for this status",
			})
		}
	} else {
		// A reason supplied for a status that does not require one is
		// discarded, not recorded.
		reason = ""
	}

	entry := domain.StatusHistoryEntry{
		OrderID:   orderID,
		Status:    def.Description,
		ChangedBy: actor,
		Timestamp: time.Now().UTC(),
	}
	if reason != "" {
		entry.Reason = &reason
	}
	if order.Shipped() && def.ID != domain.StatusIDShipped {
		reverted := domain.StatusShipped
		entry.RevertedFrom = &reverted
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// MySQL ignores the rollback once the commit went through.
	defer tx.Rollback()

	if err := s.orderRepo.UpdateStatus(txCtx, tx, orderID, def.Description, def.ID); err != nil {
		s.logger.Error("failed to update order status", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	if _, err := s.historyRepo.Insert(txCtx, tx, entry); err != nil {
		s.logger.Error("failed to append history entry", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("status transition applied",
		zap.Uint("orderId", orderID),
		zap.String("from", order.Status),
		zap.String("to", def.Description),
		zap.String("actor", actor),
	)

	updated := *order
	updated.Status = def.Description
	updated.StatusID = def.ID
	return &updated, nil
}
