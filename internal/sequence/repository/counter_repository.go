package repository

import (
	"context"
	"database/sql"
	"fmt"

	"aquaorders/internal/domain"
	"aquaorders/internal/errors"
)

type MySQLCounterRepository struct {
	db *sql.DB
}

func NewMySQLCounterRepository(db *sql.DB) *MySQLCounterRepository {
	return &MySQLCounterRepository{db: db}
}

// FindByCategory reads the counter row. A missing row is a setup defect,
// not a transient condition, so it surfaces as a ConfigurationError.
func (r *MySQLCounterRepository) FindByCategory(ctx context.Context, tx *sql.Tx, category domain.Category) (*domain.OrderCounter, error) {
	query := `SELECT category, lastNumber, version FROM OrderCounters WHERE category = ?`

	var counter domain.OrderCounter
	err := tx.QueryRowContext(ctx, query, category).Scan(
		&counter.Category, &counter.LastNumber, &counter.Version,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewConfigurationError(fmt.Sprintf("order counter for category %q is not configured", category))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order counter: %w", err)
	}

	return &counter, nil
}

// UpdateWithVersion advances the counter only if nobody else advanced it
// since the read. Losing the version check is a ConflictError the caller
// retries.
func (r *MySQLCounterRepository) UpdateWithVersion(ctx context.Context, tx *sql.Tx, counter domain.OrderCounter, newLastNumber int) error {
	query := `
		UPDATE OrderCounters
		SET lastNumber = ?, version = version + 1
		WHERE category = ? AND version = ?
	`

	result, err := tx.ExecContext(ctx, query, newLastNumber, counter.Category, counter.Version)
	if err != nil {
		return fmt.Errorf("updating order counter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewConflictError(fmt.Sprintf("order counter for category %q was updated concurrently", counter.Category))
	}

	return nil
}
