package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aquaorders/internal/domain"
	"aquaorders/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, aquaOrderNumber, customerId, customerName, orderTypeId, orderTypeName,
	       productId, productName, material, size, ifsOrderNo, customerPO,
	       quantity, shipQty, status, statusId, deliveryDate, deliveryWeek,
	       createdBy, createdAt, updatedAt`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.AquaOrderNumber, &order.CustomerID, &order.CustomerName,
		&order.OrderTypeID, &order.OrderTypeName, &order.ProductID, &order.ProductName,
		&order.Material, &order.Size, &order.IFSOrderNo, &order.CustomerPO,
		&order.Quantity, &order.ShipQty, &order.Status, &order.StatusID,
		&order.DeliveryDate, &order.DeliveryWeek, &order.CreatedBy,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM Orders WHERE id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (aquaOrderNumber, customerId, customerName, orderTypeId, orderTypeName,
		                    productId, productName, material, size, ifsOrderNo, customerPO,
		                    quantity, shipQty, status, statusId, deliveryDate, deliveryWeek, createdBy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.AquaOrderNumber, order.CustomerID, order.CustomerName,
		order.OrderTypeID, order.OrderTypeName, order.ProductID, order.ProductName,
		order.Material, order.Size, order.IFSOrderNo, order.CustomerPO,
		order.Quantity, order.ShipQty, order.Status, order.StatusID,
		order.DeliveryDate, order.DeliveryWeek, order.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string, statusID string) error {
	query := `UPDATE Orders SET status = ?, statusId = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, statusID, id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// UpdateDeliveryDate writes the date and its derived week in one
// statement so the pair is never observable out of sync.
func (r *MySQLOrderRepository) UpdateDeliveryDate(ctx context.Context, id uint, date time.Time, week string) error {
	query := `UPDATE Orders SET deliveryDate = ?, deliveryWeek = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, date, week, id)
	if err != nil {
		return fmt.Errorf("updating delivery date: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateShipQty(ctx context.Context, id uint, shipQty int) error {
	query := `UPDATE Orders SET shipQty = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, shipQty, id)
	if err != nil {
		return fmt.Errorf("updating ship quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

// FindByWeek returns the non-cancelled orders of a delivery week in
// insertion order.
func (r *MySQLOrderRepository) FindByWeek(ctx context.Context, week string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM Orders
		WHERE deliveryWeek = ? AND status <> ?
		ORDER BY id
	`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, week, domain.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("querying orders by week: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// ListWeeks returns the distinct delivery weeks present among
// non-cancelled orders, lexicographically sorted. The "{year}-W{2-digit}"
// format makes that order chronological.
func (r *MySQLOrderRepository) ListWeeks(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT deliveryWeek FROM Orders
		WHERE deliveryWeek <> '' AND status <> ?
		ORDER BY deliveryWeek
	`

	rows, err := r.db.QueryContext(ctx, query, domain.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("querying delivery weeks: %w", err)
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var week string
		if err := rows.Scan(&week); err != nil {
			return nil, fmt.Errorf("scanning delivery week: %w", err)
		}
		weeks = append(weeks, week)
	}
	return weeks, rows.Err()
}
