package refdata

import (
	"context"
	"database/sql"
	"fmt"

	"aquaorders/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) LoadStatusDefinitions(ctx context.Context) ([]domain.StatusDefinition, error) {
	query := `
		SELECT id, description, displayRank, reasonRequired
		FROM StatusDefinitions
		ORDER BY displayRank
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying status definitions: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.StatusDefinition)
	var ordered []string
	for rows.Next() {
		var def domain.StatusDefinition
		if err := rows.Scan(&def.ID, &def.Description, &def.DisplayRank, &def.ReasonRequired); err != nil {
			return nil, fmt.Errorf("scanning status definition: %w", err)
		}
		def.OrderTypeIDs = make(map[string]struct{})
		def.ProductIDs = make(map[string]struct{})
		byID[def.ID] = &def
		ordered = append(ordered, def.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status definitions: %w", err)
	}

	if err := r.loadApplicability(ctx, "StatusOrderTypes", "orderTypeId", byID, func(def *domain.StatusDefinition, id string) {
		def.OrderTypeIDs[id] = struct{}{}
	}); err != nil {
		return nil, err
	}
	if err := r.loadApplicability(ctx, "StatusProducts", "productId", byID, func(def *domain.StatusDefinition, id string) {
		def.ProductIDs[id] = struct{}{}
	}); err != nil {
		return nil, err
	}

	defs := make([]domain.StatusDefinition, 0, len(ordered))
	for _, id := range ordered {
		defs = append(defs, *byID[id])
	}
	return defs, nil
}

func (r *MySQLRepository) loadApplicability(
	ctx context.Context,
	table string,
	column string,
	byID map[string]*domain.StatusDefinition,
	add func(*domain.StatusDefinition, string),
) error {
	query := fmt.Sprintf("SELECT statusId, %s FROM %s", column, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var statusID, refID string
		if err := rows.Scan(&statusID, &refID); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		if def, ok := byID[statusID]; ok {
			add(def, refID)
		}
	}
	return rows.Err()
}

func (r *MySQLRepository) LoadCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, companyName FROM Customers`)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *MySQLRepository) LoadOrderTypes(ctx context.Context) ([]domain.OrderType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM OrderTypes`)
	if err != nil {
		return nil, fmt.Errorf("querying order types: %w", err)
	}
	defer rows.Close()

	var types []domain.OrderType
	for rows.Next() {
		var t domain.OrderType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning order type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *MySQLRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, orderTypeId FROM Products`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.OrderTypeID); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
