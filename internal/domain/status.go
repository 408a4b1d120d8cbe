package domain

// StatusDefinition is a production status loaded from reference data.
// OrderTypeIDs and ProductIDs are the applicability sets: the definition
// may only be selected for orders whose order type AND product are both
// contained.
type StatusDefinition struct {
	ID             string
	Description    string
	DisplayRank    int
	ReasonRequired bool
	OrderTypeIDs   map[string]struct{}
	ProductIDs     map[string]struct{}
}

// AppliesTo reports whether both applicability sets contain the order's
// references.
func (d StatusDefinition) AppliesTo(orderTypeID, productID string) bool {
	if orderTypeID == "" || productID == "" {
		return false
	}
	if _, ok := d.OrderTypeIDs[orderTypeID]; !ok {
		return false
	}
	_, ok := d.ProductIDs[productID]
	return ok
}

// Reserved reports whether the definition is one of the built-in statuses
// (New, Shipped, Cancelled) that are reachable regardless of
// applicability.
func (d StatusDefinition) Reserved() bool {
	switch d.ID {
	case StatusIDNew, StatusIDShipped, StatusIDCancelled:
		return true
	}
	return false
}
