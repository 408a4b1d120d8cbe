package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"aquaorders/internal/domain"
	"aquaorders/internal/dto"
	apperrors "aquaorders/internal/errors"
)

type AllocatorService interface {
	AllocateRange(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error)
	SubmitOrder(ctx context.Context, order domain.Order, category domain.Category) (*domain.Order, error)
}

type Catalog interface {
	Customer(id string) (domain.Customer, bool)
	OrderType(id string) (domain.OrderType, bool)
	Product(id string) (domain.Product, bool)
	CategoryFor(orderTypeID string) domain.Category
}

const dateLayout = "2006-01-02"

type SubmitOrderUseCase struct {
	allocatorSvc     AllocatorService
	catalog          Catalog
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewSubmitOrderUseCase(
	allocatorSvc AllocatorService,
	catalog Catalog,
	logger *zap.Logger,
	maxRetryAttempts int,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		allocatorSvc:     allocatorSvc,
		catalog:          catalog,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *SubmitOrderUseCase) SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*domain.Order, error) {
	uc.logger.Info("order submission started",
		zap.String("customerId", req.CustomerID),
		zap.String("orderTypeId", req.OrderTypeID),
		zap.String("productId", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)

	order, err := uc.buildOrder(req)
	if err != nil {
		return nil, err
	}

	category := uc.catalog.CategoryFor(req.OrderTypeID)

	var result *domain.Order
	err = uc.withRetry(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.allocatorSvc.SubmitOrder(ctx, *order, category)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AllocateRange reserves a display-number range without creating an
// order. Exposed for collaborators that insert orders through their own
// path.
func (uc *SubmitOrderUseCase) AllocateRange(ctx context.Context, category domain.Category, quantity int) (domain.NumberRange, error) {
	var details []apperrors.ValidationDetail
	if !category.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "category",
			Message: "category must be Sail or Accessory",
		})
	}
	if quantity < 1 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	if len(details) > 0 {
		return domain.NumberRange{}, apperrors.NewValidationError("validation failed", details...)
	}

	var rng domain.NumberRange
	err := uc.withRetry(ctx, func(ctx context.Context) error {
		var err error
		rng, err = uc.allocatorSvc.AllocateRange(ctx, category, quantity)
		return err
	})
	return rng, err
}

func (uc *SubmitOrderUseCase) buildOrder(req dto.SubmitOrderRequest) (*domain.Order, error) {
	var details []apperrors.ValidationDetail

	customer, ok := uc.catalog.Customer(req.CustomerID)
	if !ok {
		details = append(details, apperrors.ValidationDetail{Field: "customerId", Message: "unknown customer"})
	}
	orderType, ok := uc.catalog.OrderType(req.OrderTypeID)
	if !ok {
		details = append(details, apperrors.ValidationDetail{Field: "orderTypeId", Message: "unknown order type"})
	}
	product, ok := uc.catalog.Product(req.ProductID)
	if !ok {
		details = append(details, apperrors.ValidationDetail{Field: "productId", Message: "unknown product"})
	}
	if req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if req.CreatedBy == "" {
		details = append(details, apperrors.ValidationDetail{Field: "createdBy", Message: "createdBy is required"})
	}

	var deliveryDate *time.Time
	var deliveryWeek string
	if req.DeliveryDate != "" {
		parsed, err := time.Parse(dateLayout, req.DeliveryDate)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{Field: "deliveryDate", Message: "deliveryDate must be formatted YYYY-MM-DD"})
		} else {
			deliveryDate = &parsed
			deliveryWeek = domain.DeriveWeekKey(parsed)
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &domain.Order{
		CustomerID:    req.CustomerID,
		CustomerName:  customer.Name,
		OrderTypeID:   req.OrderTypeID,
		OrderTypeName: orderType.Name,
		ProductID:     req.ProductID,
		ProductName:   product.Name,
		Material:      req.Material,
		Size:          req.Size,
		IFSOrderNo:    req.IFSOrderNo,
		CustomerPO:    req.CustomerPO,
		Quantity:      req.Quantity,
		DeliveryDate:  deliveryDate,
		DeliveryWeek:  deliveryWeek,
		CreatedBy:     req.CreatedBy,
	}, nil
}

// withRetry reruns the allocation when the counter's optimistic version
// check loses a race or MySQL reports a lock conflict, up to the bounded
// attempt count.
func (uc *SubmitOrderUseCase) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}

		if attempt < uc.maxRetryAttempts {
			base := backoffs[len(backoffs)-1]
			if attempt-1 < len(backoffs) {
				base = backoffs[attempt-1]
			}
			// Jitter: ±20% of the backoff base.
			jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
			time.Sleep(jitter)
			uc.logger.Warn("counter conflict, retrying allocation",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", uc.maxRetryAttempts),
			)
		}
	}

	return apperrors.NewConflictError("allocation failed after max retries, please resubmit")
}

func isRetryable(err error) bool {
	if _, ok := apperrors.IsConflictError(err); ok {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
