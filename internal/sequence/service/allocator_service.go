package service

import (
	"context"
	"database/sql"
	"time"

	"aquaorders/internal/domain"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type CounterRepository interface {
	FindByCategory(ctx context.Context, tx *sql.Tx, category domain.Category) (*domain.OrderCounter, error)
	UpdateWithVersion(ctx context.Context, tx *sql.Tx, counter domain.OrderCounter, newLastNumber int) error
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

// AllocatorService reserves contiguous display-number ranges from the
// per-category counters. Each call is one transaction: the counter bump
// and whatever rides along with it (the order insert on submission)
// commit or fail together.
type AllocatorService struct {
	db          TransactionManager
	counterRepo CounterRepository
	orderRepo   OrderRepository
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewAllocatorService(
	db TransactionManager,
	counterRepo CounterRepository,
	orderRepo OrderRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *AllocatorService {
	return &AllocatorService{
		db:          db,
		counterRepo: counterRepo,
		orderRepo:   orderRepo,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

func (s *AllocatorService) reserveRange(ctx context.Context, tx *sql.Tx, category domain.Category, quantity int) (domain.NumberRange, error) {
	counter, err := s.counterRepo.FindByCategory(ctx, tx, category)
	if err != nil {
		return domain.NumberRange{}, err
	}

	rng := counter.NextRange(quantity)
	if err := s.counterRepo.UpdateWithVersion(ctx, tx, *counter, rng.Last); err != nil {
		return domain.NumberRange{}, err
	}

	return rng, nil
}

// AllocateRange reserves a block of quantity numbers for category and
// advances the counter. One failed attempt leaves the counter untouched.
func (s *AllocatorService) AllocateRange(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return domain.NumberRange{}, err
	}
	defer tx.Rollback()

	rng, err := s.reserveRange(txCtx, tx, category, quantity)
	if err != nil {
		return domain.NumberRange{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("category", string(category)), zap.Error(err))
		return domain.NumberRange{}, err
	}

	s.logger.Info("number range allocated",
		zap.String("category", string(category)),
		zap.Int("first", rng.First),
		zap.Int("last", rng.Last),
	)
	return rng, nil
}

// SubmitOrder allocates the order's display number and inserts the order
// in the same transaction, so the counter never advances without an order
// and no order ever appears without its counter bump.
func (s *AllocatorService) SubmitOrder(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	rng, err := s.reserveRange(txCtx, tx, category, order.Quantity)
	if err != nil {
		return nil, err
	}

	order.AquaOrderNumber = rng.Display()
	order.Status = domain.StatusNew
	order.StatusID = domain.StatusIDNew

	id, err := s.orderRepo.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.String("aquaOrderNumber", order.AquaOrderNumber), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("aquaOrderNumber", order.AquaOrderNumber), zap.Error(err))
		return nil, err
	}

	order.ID = id
	s.logger.Info("order submitted",
		zap.Uint("orderId", id),
		zap.String("aquaOrderNumber", order.AquaOrderNumber),
		zap.String("category", string(category)),
		zap.Int("quantity", order.Quantity),
	)
	return &order, nil
}
