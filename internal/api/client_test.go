package api

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miromero13/spos-terminal/internal/apierror"
	"github.com/miromero13/spos-terminal/internal/apitest"
	"github.com/miromero13/spos-terminal/internal/model"
)

func newClient(t *testing.T) (*apitest.Server, *Client) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return srv, NewClient(Options{BaseURL: srv.URL}, zerolog.Nop())
}

func TestGetUnwrapsEnvelopeData(t *testing.T) {
	_, client := newClient(t)

	var vc model.ValidateCash
	require.NoError(t, client.Get(context.Background(), EndpointCashValidate, &vc))
	assert.False(t, vc.Validate)
	assert.Empty(t, vc.ID)
}

func TestListReturnsRowsAndCount(t *testing.T) {
	srv, client := newClient(t)
	srv.SeedProducts(
		model.Product{ID: "p1", Name: "Coca Cola", SalePrice: decimal.NewFromInt(12)},
		model.Product{ID: "p2", Name: "Fanta", SalePrice: decimal.NewFromInt(11)},
	)

	var products []model.Product
	count, err := client.List(context.Background(), EndpointProducts, DefaultQuery(), &products)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, products, 2)
	assert.True(t, products[0].SalePrice.Equal(decimal.NewFromInt(12)))
}

func TestListAppliesAttrValueSearch(t *testing.T) {
	srv, client := newClient(t)
	srv.SeedProducts(
		model.Product{ID: "p1", Name: "Coca Cola"},
		model.Product{ID: "p2", Name: "Fanta"},
	)

	q := DefaultQuery().WithSearch("name", "coca")
	var products []model.Product
	count, err := client.List(context.Background(), EndpointProducts, q, &products)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestErrorResponsesDecodeToResponseError(t *testing.T) {
	_, client := newClient(t)

	err := client.Get(context.Background(), EndpointCash+"no-such-id/", nil)
	require.Error(t, err)

	var re *apierror.ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 404, re.StatusCode)
	assert.Equal(t, "caja no encontrada", re.First(""))
}

func TestCreateSendsExtraHeaders(t *testing.T) {
	srv, client := newClient(t)

	require.NoError(t, client.Create(context.Background(), EndpointCash,
		model.OpenCashRequest{InitialBalance: decimal.NewFromInt(10)}, nil, nil))
	id, err := func() (string, error) {
		var vc model.ValidateCash
		err := client.Get(context.Background(), EndpointCashValidate, &vc)
		return vc.ID, err
	}()
	require.NoError(t, err)

	body := map[string]interface{}{
		"cash_register": id,
		"details": []map[string]interface{}{
			{"product": "p1", "quantity": 2, "price": "5"},
		},
	}
	headers := map[string]string{"X-Idempotency-Key": "key-a"}
	require.NoError(t, client.Create(context.Background(), EndpointSales, body, nil, headers))
	require.NoError(t, client.Create(context.Background(), EndpointSales, body, nil, headers))

	// The key travelled with both requests, so the server saw a duplicate.
	assert.Len(t, srv.Sales(), 1)
}

func TestJoinKeepsTrailingSlash(t *testing.T) {
	assert.Equal(t, "/api/sales/abc/", join(EndpointSales, "abc"))
}
