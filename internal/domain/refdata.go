package domain

// Reference records supplied by the catalog/admin side of the system.
// The core only ever reads them.

type Customer struct {
	ID   string
	Name string
}

type OrderType struct {
	ID   string
	Name string
}

type Product struct {
	ID          string
	Name        string
	OrderTypeID string
}
