package domain

import "time"

// Reserved status descriptions. New is assigned at creation, Shipped and
// Cancelled are terminal markers that short-circuit schedule visibility.
// Every other status comes from the StatusDefinitions reference data.
const (
	StatusNew       = "New"
	StatusShipped   = "Shipped"
	StatusCancelled = "Cancelled"
)

// Reserved status definition ids matching the descriptions above.
const (
	StatusIDNew       = "new"
	StatusIDShipped   = "shipped"
	StatusIDCancelled = "cancelled"
)

type Order struct {
	ID              uint
	AquaOrderNumber string
	CustomerID      string
	CustomerName    string
	OrderTypeID     string
	OrderTypeName   string
	ProductID       string
	ProductName     string
	Material        string
	Size            string
	IFSOrderNo      string
	CustomerPO      string
	Quantity        int
	ShipQty         *int
	Status          string
	StatusID        string
	DeliveryDate    *time.Time
	DeliveryWeek    string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o Order) Shipped() bool {
	return o.Status == StatusShipped
}

func (o Order) Cancelled() bool {
	return o.Status == StatusCancelled
}

// Terminal reports whether the order left the active production flow.
func (o Order) Terminal() bool {
	return o.Shipped() || o.Cancelled()
}
