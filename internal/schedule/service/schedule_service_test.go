package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"aquaorders/internal/domain"
	apperrors "aquaorders/internal/errors"
)

type mockOrderRepository struct {
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Order, error)
	FindByWeekFunc         func(ctx context.Context, week string) ([]domain.Order, error)
	ListWeeksFunc          func(ctx context.Context) ([]string, error)
	UpdateDeliveryDateFunc func(ctx context.Context, id uint, date time.Time, week string) error
	UpdateShipQtyFunc      func(ctx context.Context, id uint, shipQty int) error
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) FindByWeek(ctx context.Context, week string) ([]domain.Order, error) {
	return m.FindByWeekFunc(ctx, week)
}

func (m *mockOrderRepository) ListWeeks(ctx context.Context) ([]string, error) {
	return m.ListWeeksFunc(ctx)
}

func (m *mockOrderRepository) UpdateDeliveryDate(ctx context.Context, id uint, date time.Time, week string) error {
	return m.UpdateDeliveryDateFunc(ctx, id, date, week)
}

func (m *mockOrderRepository) UpdateShipQty(ctx context.Context, id uint, shipQty int) error {
	return m.UpdateShipQtyFunc(ctx, id, shipQty)
}

func TestAvailableWeeks(t *testing.T) {
	repo := &mockOrderRepository{
		ListWeeksFunc: func(ctx context.Context) ([]string, error) {
			return []string{"2026-W02", "2026-W15"}, nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	weeks, err := svc.AvailableWeeks(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(weeks) != 2 || weeks[0] != "2026-W02" {
		t.Errorf("unexpected weeks: %v", weeks)
	}
}

func TestGroupByCustomer(t *testing.T) {
	repo := &mockOrderRepository{
		FindByWeekFunc: func(ctx context.Context, week string) ([]domain.Order, error) {
			return []domain.Order{
				{ID: 1, CustomerName: "Zephyr Sails", Status: "In Production"},
				{ID: 2, CustomerName: "Aalto Marine", Status: domain.StatusNew},
				{ID: 3, CustomerName: "Zephyr Sails", Status: domain.StatusShipped},
				{ID: 4, CustomerName: "Zephyr Sails", Status: "Finishing"},
				{ID: 5, CustomerName: "", Status: domain.StatusNew},
			}, nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	sched, err := svc.GroupByCustomer(context.Background(), "2026-W10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sched.Week != "2026-W10" {
		t.Errorf("expected week 2026-W10, got %s", sched.Week)
	}
	if len(sched.Shipped) != 1 || sched.Shipped[0].ID != 3 {
		t.Errorf("expected order 3 in shipped bucket, got %+v", sched.Shipped)
	}

	want := []string{"Aalto Marine", "Unknown Customer", "Zephyr Sails"}
	if len(sched.Customers) != len(want) {
		t.Fatalf("expected customers %v, got %v", want, sched.Customers)
	}
	for i, customer := range want {
		if sched.Customers[i] != customer {
			t.Errorf("expected customer %q at position %d, got %q", customer, i, sched.Customers[i])
		}
	}

	zephyr := sched.ByCustomer["Zephyr Sails"]
	if len(zephyr) != 2 || zephyr[0].ID != 1 || zephyr[1].ID != 4 {
		t.Errorf("expected orders 1 and 4 for Zephyr Sails in creation order, got %+v", zephyr)
	}
}

func TestGroupByCustomer_EmptyWeek(t *testing.T) {
	repo := &mockOrderRepository{
		FindByWeekFunc: func(ctx context.Context, week string) ([]domain.Order, error) {
			return nil, nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	sched, err := svc.GroupByCustomer(context.Background(), "2026-W40")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sched.ByCustomer) != 0 || len(sched.Shipped) != 0 || len(sched.Customers) != 0 {
		t.Errorf("expected empty schedule, got %+v", sched)
	}
}

func TestChangeDeliveryDate_DerivesWeek(t *testing.T) {
	var gotDate time.Time
	var gotWeek string
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, DeliveryWeek: "2026-W05"}, nil
		},
		UpdateDeliveryDateFunc: func(ctx context.Context, id uint, date time.Time, week string) error {
			gotDate = date
			gotWeek = week
			return nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	newDate := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	updated, err := svc.ChangeDeliveryDate(context.Background(), 7, newDate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !gotDate.Equal(newDate) {
		t.Errorf("expected date %v persisted, got %v", newDate, gotDate)
	}
	if gotWeek != "2026-W10" {
		t.Errorf("expected derived week 2026-W10, got %s", gotWeek)
	}
	if updated.DeliveryWeek != "2026-W10" {
		t.Errorf("expected returned order on week 2026-W10, got %s", updated.DeliveryWeek)
	}
}

func TestChangeDeliveryDate_OrderNotFound(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order not found")
		},
		UpdateDeliveryDateFunc: func(ctx context.Context, id uint, date time.Time, week string) error {
			t.Error("update should not be called for a missing order")
			return nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	_, err := svc.ChangeDeliveryDate(context.Background(), 99, time.Now())
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateShipQty(t *testing.T) {
	var gotQty int
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return &domain.Order{ID: id, Quantity: 5}, nil
		},
		UpdateShipQtyFunc: func(ctx context.Context, id uint, shipQty int) error {
			gotQty = shipQty
			return nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	updated, err := svc.UpdateShipQty(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotQty != 3 {
		t.Errorf("expected 3 persisted, got %d", gotQty)
	}
	if updated.ShipQty == nil || *updated.ShipQty != 3 {
		t.Errorf("expected returned ship qty 3, got %v", updated.ShipQty)
	}
}

func TestUpdateShipQty_Negative(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			t.Error("lookup should not happen when validation fails")
			return nil, nil
		},
	}

	svc := NewScheduleService(repo, zap.NewNop())

	_, err := svc.UpdateShipQty(context.Background(), 7, -1)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}
