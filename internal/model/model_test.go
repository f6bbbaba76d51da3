package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashOnHand(t *testing.T) {
	c := CashRegister{
		InitialBalance: decimal.NewFromInt(1000),
		SalesTotal:     decimal.NewFromInt(500),
		PurchasesTotal: decimal.NewFromInt(200),
	}
	assert.Equal(t, "1300.00", c.CashOnHand().StringFixed(2))
}

func TestIsOpen(t *testing.T) {
	c := CashRegister{}
	assert.True(t, c.IsOpen())

	now := time.Now()
	c.Closing = &now
	assert.False(t, c.IsOpen())
}

func TestCashRegisterDecodesDecimalStrings(t *testing.T) {
	body := []byte(`{
		"id": "r1",
		"opening": "2025-03-01T08:00:00Z",
		"initial_balance": "1000.50",
		"sales_total": "200",
		"purchases_total": "50.25"
	}`)
	var c CashRegister
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, "1150.25", c.CashOnHand().StringFixed(2))
}

func TestValidateOpenCashRequest(t *testing.T) {
	assert.NoError(t, Validate(OpenCashRequest{InitialBalance: decimal.Zero}))
	assert.NoError(t, Validate(OpenCashRequest{InitialBalance: decimal.NewFromInt(100)}))
	assert.Error(t, Validate(OpenCashRequest{InitialBalance: decimal.NewFromInt(-1)}))
}

func TestValidateCreateSaleRequest(t *testing.T) {
	valid := CreateSaleRequest{
		CashRegister: "r1",
		Details: []CreateSaleDetail{
			{Product: "p1", Quantity: 1, Price: decimal.NewFromInt(10)},
		},
	}
	assert.NoError(t, Validate(valid))

	noDetails := valid
	noDetails.Details = nil
	assert.Error(t, Validate(noDetails))

	noRegister := valid
	noRegister.CashRegister = ""
	assert.Error(t, Validate(noRegister))

	badQuantity := valid
	badQuantity.Details = []CreateSaleDetail{{Product: "p1", Quantity: 0, Price: decimal.NewFromInt(10)}}
	assert.Error(t, Validate(badQuantity))
}

func TestValidateCreateCustomerRequest(t *testing.T) {
	valid := CreateCustomerRequest{CI: 7654321, Name: "Juan", Password: "x", Role: "customer"}
	assert.NoError(t, Validate(valid))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, Validate(badEmail))

	noName := valid
	noName.Name = ""
	assert.Error(t, Validate(noName))
}
