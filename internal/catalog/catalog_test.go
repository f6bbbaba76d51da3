package catalog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miromero13/spos-terminal/internal/api"
	"github.com/miromero13/spos-terminal/internal/apitest"
	"github.com/miromero13/spos-terminal/internal/model"
)

func newCatalog(t *testing.T) (*apitest.Server, *Catalog) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Options{BaseURL: srv.URL}, zerolog.Nop())
	return srv, New(client, zerolog.Nop())
}

func TestProductsSearchByName(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.SeedProducts(
		model.Product{ID: "p1", Name: "Coca Cola", SalePrice: decimal.NewFromInt(12)},
		model.Product{ID: "p2", Name: "Fanta", SalePrice: decimal.NewFromInt(11)},
	)

	all, err := cat.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := cat.Products(context.Background(), "coca")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "p1", matched[0].ID)
}

func TestProductsListingIsCached(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.SeedProducts(model.Product{ID: "p1", Name: "Coca Cola"})

	first, err := cat.Products(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// New server-side data is not visible until the cache is dropped.
	srv.SeedProducts(model.Product{ID: "p2", Name: "Fanta"})
	cached, err := cat.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	cat.Invalidate(api.EndpointProducts)
	fresh, err := cat.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestFindCustomer(t *testing.T) {
	srv, cat := newCatalog(t)
	srv.SeedCustomers(
		model.Customer{ID: "c1", Name: "Juan Pérez", CI: 7654321},
		model.Customer{ID: "c2", Name: "Ana López", CI: 1234567},
	)

	found, err := cat.FindCustomer(context.Background(), "c2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ana López", found.Name)

	missing, err := cat.FindCustomer(context.Background(), "c9")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuickCreateCustomerInvalidatesCache(t *testing.T) {
	_, cat := newCatalog(t)

	before, err := cat.Customers(context.Background())
	require.NoError(t, err)
	require.Empty(t, before)

	require.NoError(t, cat.QuickCreateCustomer(context.Background(), "Juan Pérez", 7654321, 70010203, "juan@example.com"))

	after, err := cat.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Juan Pérez", after[0].Name)
	assert.EqualValues(t, 7654321, after[0].CI)
}

func TestQuickCreateCustomerValidatesLocally(t *testing.T) {
	_, cat := newCatalog(t)

	err := cat.QuickCreateCustomer(context.Background(), "", 0, 0, "")
	require.Error(t, err)

	customers, err := cat.Customers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}
