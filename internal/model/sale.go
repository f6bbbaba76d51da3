package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleDetail is one cart line on the wire: unit price snapshotted at
// add time, never re-read from the catalog.
type CreateSaleDetail struct {
	Product  string          `json:"product" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price" validate:"required"`
}

// CreateSaleRequest is the create-sale body. Customer and NIT are optional;
// a sale without details is rejected before it leaves the terminal.
type CreateSaleRequest struct {
	Customer     string             `json:"customer,omitempty"`
	CashRegister string             `json:"cash_register" validate:"required"`
	NIT          string             `json:"nit,omitempty"`
	Details      []CreateSaleDetail `json:"details" validate:"required,min=1,dive"`
}

// CreateSaleResult is the data payload returned on a successful create.
type CreateSaleResult struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// SaleDetail is one line of a persisted sale as the history endpoints
// return it.
type SaleDetail struct {
	ProductDetail *Product        `json:"product_detail"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
}

// Sale is a persisted sale record.
type Sale struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	NIT          string          `json:"nit"`
	Customer     *User           `json:"customer"`
	CashRegister *CashRegister   `json:"cash_register"`
	Details      []SaleDetail    `json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
}
