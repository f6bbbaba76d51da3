package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister is the read-only projection of a register session as the
// backend reports it. SalesTotal and PurchasesTotal are server-computed and
// only ever grow while the register is open.
type CashRegister struct {
	ID             string          `json:"id"`
	Opening        time.Time       `json:"opening"`
	Closing        *time.Time      `json:"closing"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
	Total          decimal.Decimal `json:"total"`
	User           *User           `json:"user"`
	CreatedAt      time.Time       `json:"created_at"`
}

// IsOpen reports whether the session has not been closed yet.
func (c *CashRegister) IsOpen() bool { return c.Closing == nil }

// CashOnHand is the reconciled amount expected in the drawer:
// sales and the opening float increase it, purchases reduce it.
func (c *CashRegister) CashOnHand() decimal.Decimal {
	return c.SalesTotal.Add(c.InitialBalance).Sub(c.PurchasesTotal)
}

// ValidateCash is the validate-open endpoint payload: the id of the
// operator's open register, if any.
type ValidateCash struct {
	ID       string `json:"id"`
	Validate bool   `json:"validate"`
}

// OpenCashRequest opens a register. The backend requires a numeric initial
// balance; zero is allowed and negative amounts are rejected client-side by
// the min=0 tag.
type OpenCashRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"min=0"`
	Observations   string          `json:"observations,omitempty" validate:"max=255"`
}
