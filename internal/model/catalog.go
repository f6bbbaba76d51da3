package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product as listed by /api/products/. SalePrice is what the cart snapshots
// when the product is added.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock"`
	PhotoURL    string          `json:"photo_url"`
	IsActive    bool            `json:"is_active"`
	Category    *Category       `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// User is a backend identity (cashier, admin or customer).
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Customer extends the user record with invoicing data. CI doubles as the
// default NIT when the customer is attached to a sale.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	CI    int64  `json:"ci"`
	Phone int64  `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateCustomerRequest is the quick-create body used from the sale screen.
// The password is a throwaway: customers never log in from the terminal.
type CreateCustomerRequest struct {
	CI       int64  `json:"ci" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    int64  `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}
