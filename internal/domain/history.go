package domain

import "time"

// StatusHistoryEntry is one immutable record in an order's status ledger.
// Entries are written only by the transition engine, in the same
// transaction as the order's status update, and never changed afterwards.
type StatusHistoryEntry struct {
	ID           uint
	OrderID      uint
	Status       string
	ChangedBy    string
	Timestamp    time.Time
	Reason       *string
	RevertedFrom *string
}
