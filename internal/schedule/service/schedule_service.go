package service

import (
	"context"
	"sort"
	"time"

	"aquaorders/internal/domain"
	apperrors "aquaorders/internal/errors"

	"go.uber.org/zap"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByWeek(ctx context.Context, week string) ([]domain.Order, error)
	ListWeeks(ctx context.Context) ([]string, error)
	UpdateDeliveryDate(ctx context.Context, id uint, date time.Time, week string) error
	UpdateShipQty(ctx context.Context, id uint, shipQty int) error
}

// WeekSchedule is one week's view of active production: orders grouped by
// customer, with shipped orders pulled out into their own bucket.
type WeekSchedule struct {
	Week       string
	ByCustomer map[string][]domain.Order
	Customers  []string
	Shipped    []domain.Order
}

type ScheduleService struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewScheduleService(orderRepo OrderRepository, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// AvailableWeeks lists the distinct delivery weeks of non-cancelled
// orders, sorted ascending.
func (s *ScheduleService) AvailableWeeks(ctx context.Context) ([]string, error) {
	return s.orderRepo.ListWeeks(ctx)
}

// GroupByCustomer builds the week's schedule. Cancelled orders never show
// up; shipped orders are kept out of the customer grouping. Within a
// customer, orders stay in creation order.
func (s *ScheduleService) GroupByCustomer(ctx context.Context, week string) (*WeekSchedule, error) {
	orders, err := s.orderRepo.FindByWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	sched := &WeekSchedule{
		Week:       week,
		ByCustomer: make(map[string][]domain.Order),
	}
	for _, order := range orders {
		if order.Shipped() {
			sched.Shipped = append(sched.Shipped, order)
			continue
		}
		customer := order.CustomerName
		if customer == "" {
			customer = "Unknown Customer"
		}
		sched.ByCustomer[customer] = append(sched.ByCustomer[customer], order)
	}

	for customer := range sched.ByCustomer {
		sched.Customers = append(sched.Customers, customer)
	}
	sort.Strings(sched.Customers)

	return sched, nil
}

// ChangeDeliveryDate rebuckets an order: the new date and its derived
// week are persisted in a single update.
func (s *ScheduleService) ChangeDeliveryDate(ctx context.Context, orderID uint, newDate time.Time) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	week := domain.DeriveWeekKey(newDate)
	if err := s.orderRepo.UpdateDeliveryDate(ctx, orderID, newDate, week); err != nil {
		return nil, err
	}

	s.logger.Info("delivery date changed",
		zap.Uint("orderId", orderID),
		zap.String("deliveryWeek", week),
	)

	updated := *order
	updated.DeliveryDate = &newDate
	updated.DeliveryWeek = week
	return &updated, nil
}

func (s *ScheduleService) UpdateShipQty(ctx context.Context, orderID uint, shipQty int) (*domain.Order, error) {
	if shipQty < 0 {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "shipQty",
			Message: "shipQty must be non-negative",
		})
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateShipQty(ctx, orderID, shipQty); err != nil {
		return nil, err
	}

	updated := *order
	updated.ShipQty = &shipQty
	return &updated, nil
}
