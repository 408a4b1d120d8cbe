package repository

import (
	"context"
	"database/sql"
	"fmt"

	"aquaorders/internal/domain"
)

type MySQLHistoryRepository struct {
	db *sql.DB
}

func NewMySQLHistoryRepository(db *sql.DB) *MySQLHistoryRepository {
	return &MySQLHistoryRepository{db: db}
}

// Insert appends one ledger entry. There is deliberately no update or
// delete counterpart; entries are immutable once written.
func (r *MySQLHistoryRepository) Insert(ctx context.Context, tx *sql.Tx, entry domain.StatusHistoryEntry) (uint, error) {
	query := `
		INSERT INTO StatusHistory (orderId, status, changedBy, timestamp, reason, revertedFrom)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		entry.OrderID, entry.Status, entry.ChangedBy, entry.Timestamp,
		entry.Reason, entry.RevertedFrom,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting status history entry: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// ListByOrder returns the order's ledger newest-first. The id tiebreak
// keeps entries written in the same second stable across re-queries.
func (r *MySQLHistoryRepository) ListByOrder(ctx context.Context, orderID uint) ([]domain.StatusHistoryEntry, error) {
	query := `
		SELECT id, orderId, status, changedBy, timestamp, reason, revertedFrom
		FROM StatusHistory
		WHERE orderId = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	var entries []domain.StatusHistoryEntry
	for rows.Next() {
		var entry domain.StatusHistoryEntry
		err := rows.Scan(
			&entry.ID, &entry.OrderID, &entry.Status, &entry.ChangedBy,
			&entry.Timestamp, &entry.Reason, &entry.RevertedFrom,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning status history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
