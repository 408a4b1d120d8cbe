package refdata

import (
	"context"
	"errors"
	"testing"

	"aquaorders/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepository struct {
	LoadStatusDefinitionsFunc func(ctx context.Context) ([]domain.StatusDefinition, error)
	LoadCustomersFunc         func(ctx context.Context) ([]domain.Customer, error)
	LoadOrderTypesFunc        func(ctx context.Context) ([]domain.OrderType, error)
	LoadProductsFunc          func(ctx context.Context) ([]domain.Product, error)
}

func (m *mockRepository) LoadStatusDefinitions(ctx context.Context) ([]domain.StatusDefinition, error) {
	return m.LoadStatusDefinitionsFunc(ctx)
}

func (m *mockRepository) LoadCustomers(ctx context.Context) ([]domain.Customer, error) {
	return m.LoadCustomersFunc(ctx)
}

func (m *mockRepository) LoadOrderTypes(ctx context.Context) ([]domain.OrderType, error) {
	return m.LoadOrderTypesFunc(ctx)
}

func (m *mockRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return m.LoadProductsFunc(ctx)
}

func testRepository() *mockRepository {
	return &mockRepository{
		LoadStatusDefinitionsFunc: func(ctx context.Context) ([]domain.StatusDefinition, error) {
			return []domain.StatusDefinition{
				{
					ID:          "in_production",
					Description: "In Production",
					DisplayRank: 2,
					OrderTypeIDs: map[string]struct{}{
						"ot-sail": {},
					},
					ProductIDs: map[string]struct{}{
						"p-genoa": {},
					},
				},
				{
					ID:             "temporary_stop",
					Description:    "Temporary Stop",
					DisplayRank:    9,
					ReasonRequired: true,
					OrderTypeIDs: map[string]struct{}{
						"ot-sail":      {},
						"ot-accessory": {},
					},
					ProductIDs: map[string]struct{}{
						"p-genoa": {},
						"p-bag":   {},
					},
				},
				{
					ID:          "order_received",
					Description: "Order Received",
					DisplayRank: 1,
					OrderTypeIDs: map[string]struct{}{
						"ot-accessory": {},
					},
					ProductIDs: map[string]struct{}{
						"p-bag": {},
					},
				},
			}, nil
		},
		LoadCustomersFunc: func(ctx context.Context) ([]domain.Customer, error) {
			return []domain.Customer{{ID: "c-1", Name: "North Marine"}}, nil
		},
		LoadOrderTypesFunc: func(ctx context.Context) ([]domain.OrderType, error) {
			return []domain.OrderType{
				{ID: "ot-sail", Name: "Sail"},
				{ID: "ot-accessory", Name: "Accessory"},
			}, nil
		},
		LoadProductsFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: "p-genoa", Name: "Genoa", OrderTypeID: "ot-sail"},
				{ID: "p-bag", Name: "Sail Bag", OrderTypeID: "ot-accessory"},
			}, nil
		},
	}
}

func newLoadedCatalog(t *testing.T) *Catalog {
	catalog := NewCatalog(testRepository(), zap.NewNop())
	require.NoError(t, catalog.Reload(context.Background()))
	return catalog
}

func TestCatalog_Status_Loaded(t *testing.T) {
	catalog := newLoadedCatalog(t)

	def, ok := catalog.Status("temporary_stop")
	assert.True(t, ok)
	assert.Equal(t, "Temporary Stop", def.Description)
	assert.True(t, def.ReasonRequired)
}

func TestCatalog_Status_Reserved(t *testing.T) {
	catalog := newLoadedCatalog(t)

	for id, description := range map[string]string{
		domain.StatusIDNew:       domain.StatusNew,
		domain.StatusIDShipped:   domain.StatusShipped,
		domain.StatusIDCancelled: domain.StatusCancelled,
	} {
		def, ok := catalog.Status(id)
		assert.True(t, ok)
		assert.Equal(t, description, def.Description)
		assert.True(t, def.Reserved())
	}
}

func TestCatalog_Status_Unknown(t *testing.T) {
	catalog := newLoadedCatalog(t)

	_, ok := catalog.Status("no_such_status")
	assert.False(t, ok)
}

func TestCatalog_Statuses_OrderedByDisplayRank(t *testing.T) {
	catalog := newLoadedCatalog(t)

	statuses := catalog.Statuses()
	require.Len(t, statuses, 3)
	assert.Equal(t, "order_received", statuses[0].ID)
	assert.Equal(t, "in_production", statuses[1].ID)
	assert.Equal(t, "temporary_stop", statuses[2].ID)
}

func TestCatalog_ValidStatuses_ExactSet(t *testing.T) {
	catalog := newLoadedCatalog(t)

	order := domain.Order{OrderTypeID: "ot-sail", ProductID: "p-genoa"}
	valid := catalog.ValidStatuses(order)

	require.Len(t, valid, 2)
	assert.Equal(t, "in_production", valid[0].ID)
	assert.Equal(t, "temporary_stop", valid[1].ID)
}

func TestCatalog_ValidStatuses_Empty(t *testing.T) {
	catalog := newLoadedCatalog(t)

	order := domain.Order{OrderTypeID: "ot-sail", ProductID: "p-unknown"}
	assert.Empty(t, catalog.ValidStatuses(order))
}

func TestCatalog_CategoryFor(t *testing.T) {
	catalog := newLoadedCatalog(t)

	assert.Equal(t, domain.CategorySail, catalog.CategoryFor("ot-sail"))
	assert.Equal(t, domain.CategoryAccessory, catalog.CategoryFor("ot-accessory"))
	assert.Equal(t, domain.CategoryAccessory, catalog.CategoryFor("ot-unknown"))
}

func TestCatalog_Lookups(t *testing.T) {
	catalog := newLoadedCatalog(t)

	customer, ok := catalog.Customer("c-1")
	assert.True(t, ok)
	assert.Equal(t, "North Marine", customer.Name)

	product, ok := catalog.Product("p-genoa")
	assert.True(t, ok)
	assert.Equal(t, "Genoa", product.Name)

	_, ok = catalog.OrderType("missing")
	assert.False(t, ok)
}

func TestCatalog_Reload_FailureKeepsSnapshot(t *testing.T) {
	repo := testRepository()
	catalog := NewCatalog(repo, zap.NewNop())
	require.NoError(t, catalog.Reload(context.Background()))

	repo.LoadStatusDefinitionsFunc = func(ctx context.Context) ([]domain.StatusDefinition, error) {
		return nil, errors.New("connection lost")
	}

	err := catalog.Reload(context.Background())
	assert.Error(t, err)

	// The previous snapshot stays in service.
	_, ok := catalog.Status("temporary_stop")
	assert.True(t, ok)
}
