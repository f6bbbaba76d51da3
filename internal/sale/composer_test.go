package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miromero13/spos-terminal/internal/model"
)

func product(id, name string, price int64) *model.Product {
	return &model.Product{ID: id, Name: name, SalePrice: decimal.NewFromInt(price), IsActive: true}
}

func TestAddOrIncrementMergesLines(t *testing.T) {
	c := NewComposer()
	p := product("p1", "Coca Cola 2L", 12)

	c.AddOrIncrement(p)
	c.AddOrIncrement(p)
	c.AddOrIncrement(p)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Pan", 1))
	c.AddOrIncrement(product("p2", "Leche", 8))
	c.AddOrIncrement(product("p1", "Pan", 1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p2", lines[1].ProductID)
}

func TestIncrementAndDecrement(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Arroz", 10))

	c.Increment("p1")
	c.Increment("p1")
	c.Decrement("p1")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// Unknown products are no-ops, not errors.
	c.Increment("missing")
	c.Decrement("missing")
	assert.Len(t, c.Lines(), 1)
}

func TestDecrementAtQuantityOneRemovesLine(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Azúcar", 7))
	c.AddOrIncrement(product("p2", "Café", 25))

	c.Decrement("p1")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(25)), "total recomputed after removal")
}

func TestTotalAndChangeDue(t *testing.T) {
	c := NewComposer()
	p1 := product("p1", "Jugo", 10)
	p2 := product("p2", "Galletas", 20)
	c.AddOrIncrement(p1)
	c.AddOrIncrement(p1)
	c.AddOrIncrement(p2)
	c.AddOrIncrement(p2)

	require.True(t, c.Total().Equal(decimal.NewFromInt(60)))

	c.SetAmountPaid(decimal.NewFromInt(100))
	assert.True(t, c.ChangeDue().Equal(decimal.NewFromInt(40)))
}

func TestChangeDueMayBeNegative(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Aceite", 30))
	c.SetAmountPaid(decimal.NewFromInt(20))

	assert.True(t, c.ChangeDue().Equal(decimal.NewFromInt(-10)))
}

func TestUnitPriceIsSnapshottedAtAddTime(t *testing.T) {
	c := NewComposer()
	p := product("p1", "Harina", 15)
	c.AddOrIncrement(p)

	// A later catalog price change must not leak into the cart.
	p.SalePrice = decimal.NewFromInt(99)
	c.Increment("p1")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(30)))
}

func TestSetCustomerPrefillsTaxID(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Fideos", 6))
	c.SetCustomer(&model.Customer{ID: "c1", Name: "Juan Pérez", CI: 7654321})

	d, err := c.Draft("reg-1")
	require.NoError(t, err)
	assert.Equal(t, "c1", d.CustomerID)
	assert.Equal(t, "Juan Pérez", d.CustomerName)
	assert.Equal(t, "7654321", d.TaxID)

	// An explicit NIT entered afterwards wins.
	c.SetTaxID("1023456022")
	d, err = c.Draft("reg-1")
	require.NoError(t, err)
	assert.Equal(t, "1023456022", d.TaxID)
}

func TestDraftRejectsEmptyCart(t *testing.T) {
	c := NewComposer()
	_, err := c.Draft("reg-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestDraftKeySurvivesRetriesUntilClear(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Yogurt", 9))

	first, err := c.Draft("reg-1")
	require.NoError(t, err)
	require.NotEmpty(t, first.Key)

	// A retry of the same drafting session reuses the key so the backend
	// can deduplicate.
	second, err := c.Draft("reg-1")
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)

	c.Clear()
	c.AddOrIncrement(product("p1", "Yogurt", 9))
	third, err := c.Draft("reg-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, third.Key)
}

func TestClearResetsForm(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Queso", 35))
	c.SetCustomer(&model.Customer{ID: "c1", Name: "Ana", CI: 123})
	c.SetAmountPaid(decimal.NewFromInt(50))

	c.Clear()

	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())
	assert.True(t, c.ChangeDue().IsZero())
}

func TestDraftTotalsMatchComposer(t *testing.T) {
	c := NewComposer()
	c.AddOrIncrement(product("p1", "Té", 10))
	c.Increment("p1")
	c.SetAmountPaid(decimal.NewFromInt(25))

	d, err := c.Draft("reg-9")
	require.NoError(t, err)
	assert.Equal(t, "reg-9", d.RegisterID)
	assert.True(t, d.Total().Equal(decimal.NewFromInt(20)))
	assert.True(t, d.Change().Equal(decimal.NewFromInt(5)))
}
