package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"aquaorders/internal/domain"
	"aquaorders/internal/dto"
	apperrors "aquaorders/internal/errors"
)

type mockAllocatorService struct {
	AllocateRangeFunc func(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error)
	SubmitOrderFunc   func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error)
}

func (m *mockAllocatorService) AllocateRange(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error) {
	return m.AllocateRangeFunc(ctx, category, quantity)
}

func (m *mockAllocatorService) SubmitOrder(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
	return m.SubmitOrderFunc(ctx, order, category)
}

type mockCatalog struct {
	CustomerFunc    func(id string) (domain.Customer, bool)
	OrderTypeFunc   func(id string) (domain.OrderType, bool)
	ProductFunc     func(id string) (domain.Product, bool)
	CategoryForFunc func(orderTypeID string) domain.Category
}

func (m *mockCatalog) Customer(id string) (domain.Customer, bool) {
	return m.CustomerFunc(id)
}

func (m *mockCatalog) OrderType(id string) (domain.OrderType, bool) {
	return m.OrderTypeFunc(id)
}

func (m *mockCatalog) Product(id string) (domain.Product, bool) {
	return m.ProductFunc(id)
}

func (m *mockCatalog) CategoryFor(orderTypeID string) domain.Category {
	return m.CategoryForFunc(orderTypeID)
}

func knownCatalog() *mockCatalog {
	return &mockCatalog{
		CustomerFunc: func(id string) (domain.Customer, bool) {
			return domain.Customer{ID: id, Name: "North Marine"}, true
		},
		OrderTypeFunc: func(id string) (domain.OrderType, bool) {
			return domain.OrderType{ID: id, Name: "Sail"}, true
		},
		ProductFunc: func(id string) (domain.Product, bool) {
			return domain.Product{ID: id, Name: "Genoa"}, true
		},
		CategoryForFunc: func(orderTypeID string) domain.Category {
			return domain.CategorySail
		},
	}
}

func validRequest() dto.SubmitOrderRequest {
	return dto.SubmitOrderRequest{
		CustomerID:   "c-1",
		OrderTypeID:  "ot-sail",
		ProductID:    "p-genoa",
		Quantity:     2,
		DeliveryDate: "2026-03-02",
		CreatedBy:    "planner@example.com",
	}
}

func TestSubmitOrder_Success(t *testing.T) {
	var capturedOrder domain.Order
	var capturedCategory domain.Category
	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			capturedOrder = order
			capturedCategory = category
			order.ID = 1
			order.AquaOrderNumber = "S42-S43"
			return &order, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	result, err := uc.SubmitOrder(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AquaOrderNumber != "S42-S43" {
		t.Errorf("expected order number S42-S43, got %s", result.AquaOrderNumber)
	}
	if capturedCategory != domain.CategorySail {
		t.Errorf("expected category Sail, got %s", capturedCategory)
	}
	if capturedOrder.CustomerName != "North Marine" {
		t.Errorf("expected customer name resolved from catalog, got %q", capturedOrder.CustomerName)
	}
	if capturedOrder.DeliveryWeek != "2026-W10" {
		t.Errorf("expected delivery week 2026-W10, got %q", capturedOrder.DeliveryWeek)
	}
	if capturedOrder.DeliveryDate == nil || !capturedOrder.DeliveryDate.Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected delivery date 2026-03-02, got %v", capturedOrder.DeliveryDate)
	}
}

func TestSubmitOrder_UnknownReferences(t *testing.T) {
	catalog := knownCatalog()
	catalog.CustomerFunc = func(id string) (domain.Customer, bool) {
		return domain.Customer{}, false
	}
	catalog.ProductFunc = func(id string) (domain.Product, bool) {
		return domain.Product{}, false
	}

	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			t.Error("allocator should not be called when validation fails")
			return nil, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, catalog, zap.NewNop(), 3)

	_, err := uc.SubmitOrder(context.Background(), validRequest())
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Details) != 2 {
		t.Errorf("expected 2 validation details, got %d", len(ve.Details))
	}
}

func TestSubmitOrder_InvalidQuantityAndActor(t *testing.T) {
	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			t.Error("allocator should not be called when validation fails")
			return nil, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	req := validRequest()
	req.Quantity = 0
	req.CreatedBy = ""

	_, err := uc.SubmitOrder(context.Background(), req)
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Details) != 2 {
		t.Errorf("expected 2 validation details, got %d", len(ve.Details))
	}
}

func TestSubmitOrder_BadDeliveryDate(t *testing.T) {
	allocator := &mockAllocatorService{}
	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	req := validRequest()
	req.DeliveryDate = "02.03.2026"

	_, err := uc.SubmitOrder(context.Background(), req)
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitOrder_NoDeliveryDate(t *testing.T) {
	var capturedOrder domain.Order
	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			capturedOrder = order
			return &order, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	req := validRequest()
	req.DeliveryDate = ""

	_, err := uc.SubmitOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if capturedOrder.DeliveryDate != nil {
		t.Errorf("expected nil delivery date, got %v", capturedOrder.DeliveryDate)
	}
	if capturedOrder.DeliveryWeek != "" {
		t.Errorf("expected empty delivery week, got %q", capturedOrder.DeliveryWeek)
	}
}

func TestSubmitOrder_RetriesOnConflict(t *testing.T) {
	attempts := 0
	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			attempts++
			if attempts < 2 {
				return nil, apperrors.NewConflictError("counter was updated concurrently")
			}
			order.AquaOrderNumber = "S44-S45"
			return &order, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	result, err := uc.SubmitOrder(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if result.AquaOrderNumber != "S44-S45" {
		t.Errorf("expected order number S44-S45, got %s", result.AquaOrderNumber)
	}
}

func TestSubmitOrder_RetriesExhausted(t *testing.T) {
	attempts := 0
	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			attempts++
			return nil, apperrors.NewConflictError("counter was updated concurrently")
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	_, err := uc.SubmitOrder(context.Background(), validRequest())
	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Fatalf("expected conflict error after exhausted retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestSubmitOrder_ConfigurationErrorNotRetried(t *testing.T) {
	attempts := 0
	allocator := &mockAllocatorService{
		SubmitOrderFunc: func(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error) {
			attempts++
			return nil, apperrors.NewConfigurationError("counter for category \"Sail\" is not configured")
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	_, err := uc.SubmitOrder(context.Background(), validRequest())
	if _, ok := apperrors.IsConfigurationError(err); !ok {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestAllocateRange_Success(t *testing.T) {
	allocator := &mockAllocatorService{
		AllocateRangeFunc: func(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error) {
			return domain.NumberRange{Category: category, First: 42, Last: 44}, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	rng, err := uc.AllocateRange(context.Background(), domain.CategorySail, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rng.Display() != "S42-S44" {
		t.Errorf("expected display S42-S44, got %s", rng.Display())
	}
}

func TestAllocateRange_Validation(t *testing.T) {
	allocator := &mockAllocatorService{
		AllocateRangeFunc: func(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error) {
			t.Error("allocator should not be called when validation fails")
			return domain.NumberRange{}, nil
		},
	}

	uc := NewSubmitOrderUseCase(allocator, knownCatalog(), zap.NewNop(), 3)

	_, err := uc.AllocateRange(context.Background(), domain.Category("boat"), 0)
	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Details) != 2 {
		t.Errorf("expected 2 validation details, got %d", len(ve.Details))
	}
}
