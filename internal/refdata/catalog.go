package refdata

import (
	"context"
	"sort"
	"strings"
	"sync"

	"aquaorders/internal/domain"

	"go.uber.org/zap"
)

type Repository interface {
	LoadStatusDefinitions(ctx context.Context) ([]domain.StatusDefinition, error)
	LoadCustomers(ctx context.Context) ([]domain.Customer, error)
	LoadOrderTypes(ctx context.Context) ([]domain.OrderType, error)
	LoadProducts(ctx context.Context) ([]domain.Product, error)
}

// reserved definitions are always resolvable, independent of what the
// reference feed carries. New is the implicit initial status; Shipped and
// Cancelled are the terminal markers.
var reservedDefinitions = map[string]domain.StatusDefinition{
	domain.StatusIDNew:       {ID: domain.StatusIDNew, Description: domain.StatusNew},
	domain.StatusIDShipped:   {ID: domain.StatusIDShipped, Description: domain.StatusShipped},
	domain.StatusIDCancelled: {ID: domain.StatusIDCancelled, Description: domain.StatusCancelled},
}

// snapshot is one immutable view of the reference data, with lookups
// indexed at build time instead of scanned per call.
type snapshot struct {
	statusByID map[string]domain.StatusDefinition
	statuses   []domain.StatusDefinition
	customers  map[string]domain.Customer
	orderTypes map[string]domain.OrderType
	products   map[string]domain.Product
}

func buildSnapshot(
	defs []domain.StatusDefinition,
	customers []domain.Customer,
	orderTypes []domain.OrderType,
	products []domain.Product,
) *snapshot {
	snap := &snapshot{
		statusByID: make(map[string]domain.StatusDefinition, len(defs)),
		statuses:   make([]domain.StatusDefinition, len(defs)),
		customers:  make(map[string]domain.Customer, len(customers)),
		orderTypes: make(map[string]domain.OrderType, len(orderTypes)),
		products:   make(map[string]domain.Product, len(products)),
	}

	copy(snap.statuses, defs)
	sort.SliceStable(snap.statuses, func(i, j int) bool {
		return snap.statuses[i].DisplayRank < snap.statuses[j].DisplayRank
	})
	for _, def := range defs {
		snap.statusByID[def.ID] = def
	}
	for _, c := range customers {
		snap.customers[c.ID] = c
	}
	for _, t := range orderTypes {
		snap.orderTypes[t.ID] = t
	}
	for _, p := range products {
		snap.products[p.ID] = p
	}

	return snap
}

// Catalog serves indexed reference-data lookups from an atomically swapped
// snapshot. Reads never block a reload.
type Catalog struct {
	repo   Repository
	logger *zap.Logger

	mu   sync.RWMutex
	snap *snapshot
}

func NewCatalog(repo Repository, logger *zap.Logger) *Catalog {
	return &Catalog{
		repo:   repo,
		logger: logger,
		snap:   buildSnapshot(nil, nil, nil, nil),
	}
}

// Reload fetches all reference tables and swaps in a fresh snapshot. On
// error the previous snapshot stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	defs, err := c.repo.LoadStatusDefinitions(ctx)
	if err != nil {
		return err
	}
	customers, err := c.repo.LoadCustomers(ctx)
	if err != nil {
		return err
	}
	orderTypes, err := c.repo.LoadOrderTypes(ctx)
	if err != nil {
		return err
	}
	products, err := c.repo.LoadProducts(ctx)
	if err != nil {
		return err
	}

	snap := buildSnapshot(defs, customers, orderTypes, products)

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	c.logger.Info("reference data reloaded",
		zap.Int("statusDefinitions", len(defs)),
		zap.Int("customers", len(customers)),
		zap.Int("orderTypes", len(orderTypes)),
		zap.Int("products", len(products)),
	)
	return nil
}

func (c *Catalog) snapshot() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Status resolves a definition id. Reference-data definitions take
// precedence; the reserved New/Shipped/Cancelled definitions resolve even
// when the feed does not carry them.
func (c *Catalog) Status(id string) (domain.StatusDefinition, bool) {
	if def, ok := c.snapshot().statusByID[id]; ok {
		return def, true
	}
	def, ok := reservedDefinitions[id]
	return def, ok
}

// Statuses returns all loaded definitions ordered by display rank.
func (c *Catalog) Statuses() []domain.StatusDefinition {
	return c.snapshot().statuses
}

// ValidStatuses returns every definition whose applicability sets contain
// the order's order type and product. The reserved terminal statuses are
// not part of this set; they are reachable regardless.
func (c *Catalog) ValidStatuses(order domain.Order) []domain.StatusDefinition {
	var valid []domain.StatusDefinition
	for _, def := range c.snapshot().statuses {
		if def.AppliesTo(order.OrderTypeID, order.ProductID) {
			valid = append(valid, def)
		}
	}
	return valid
}

func (c *Catalog) Customer(id string) (domain.Customer, bool) {
	cust, ok := c.snapshot().customers[id]
	return cust, ok
}

func (c *Catalog) OrderType(id string) (domain.OrderType, bool) {
	t, ok := c.snapshot().orderTypes[id]
	return t, ok
}

func (c *Catalog) Product(id string) (domain.Product, bool) {
	p, ok := c.snapshot().products[id]
	return p, ok
}

// CategoryFor maps an order type to the counter category feeding its
// display numbers: the "Sail" order type draws S numbers, everything else
// draws A numbers.
func (c *Catalog) CategoryFor(orderTypeID string) domain.Category {
	if t, ok := c.snapshot().orderTypes[orderTypeID]; ok {
		if strings.EqualFold(t.Name, string(domain.CategorySail)) {
			return domain.CategorySail
		}
	}
	return domain.CategoryAccessory
}
