// Package ticket builds the presentation-only receipt of a completed sale
// and renders it through a print sink. Tickets have no lifecycle of their
// own: they are generated on demand and discarded after rendering.
package ticket

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderCode is shown until the server-assigned sale code arrives.
const PlaceholderCode = "000000000001"

// Item is one printed line.
type Item struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// Ticket is the flattened receipt projection.
type Ticket struct {
	Code     string
	Date     time.Time
	Items    []Item
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Change   decimal.Decimal
	Customer string
	NIT      string
	Cashier  string
}

// New builds a ticket with the placeholder code.
func New(items []Item, total, paid decimal.Decimal, customer, nit, cashier string) *Ticket {
	return &Ticket{
		Code:     PlaceholderCode,
		Date:     time.Now(),
		Items:    items,
		Total:    total,
		Paid:     paid,
		Change:   paid.Sub(total),
		Customer: customer,
		NIT:      nit,
		Cashier:  cashier,
	}
}

// Finalize replaces the placeholder with the server-assigned code.
func (t *Ticket) Finalize(code string) {
	if code != "" {
		t.Code = code
	}
}

// Printer is the print collaborator: it receives a fully-prepared ticket
// and performs the rendering side effect.
type Printer interface {
	PrintTicket(t *Ticket) error
}
