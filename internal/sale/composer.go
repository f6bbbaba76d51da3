// Package sale owns the in-memory cart and the one-shot submission of a
// composed sale. The cart is ephemeral: it exists for the duration of one
// sale-authoring session and is never persisted until submission.
package sale

import (
	"errors"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/miromero13/spos-terminal/internal/model"
)

// ErrEmptyCart blocks drafting/submitting a sale with no lines. The check
// runs before any network call.
var ErrEmptyCart = errors.New("el carrito está vacío")

// Line is one cart entry. UnitPrice is a snapshot taken when the product was
// added; later catalog price changes do not affect it.
type Line struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal is UnitPrice × Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Composer maintains the cart and the sale form fields. At most one line
// exists per product; adding an existing product increments it instead.
type Composer struct {
	mu         sync.Mutex
	lines      []Line
	customerID string
	customer   string
	taxID      string
	amountPaid decimal.Decimal
	draftKey   string
}

func NewComposer() *Composer {
	return &Composer{}
}

// AddOrIncrement appends a new line with quantity 1, or increments the
// existing line for the same product.
func (c *Composer) AddOrIncrement(p *model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.SalePrice,
		Quantity:  1,
	})
}

// Increment adds one unit to an existing line. Unknown products are a no-op.
func (c *Composer) Increment(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return
		}
	}
}

// Decrement removes one unit; a line at quantity 1 is removed entirely.
// Decrementing an absent product is a no-op.
func (c *Composer) Decrement(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Lines returns a copy of the cart in insertion order.
func (c *Composer) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Composer) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// SetCustomer attaches a customer and pre-fills the NIT from the customer's
// CI. A later SetTaxID overrides the pre-fill (last write wins).
func (c *Composer) SetCustomer(cust *model.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cust == nil {
		c.customerID = ""
		c.customer = ""
		return
	}
	c.customerID = cust.ID
	c.customer = cust.Name
	if cust.CI != 0 {
		c.taxID = strconv.FormatInt(cust.CI, 10)
	}
}

// SetTaxID sets the NIT printed on the invoice.
func (c *Composer) SetTaxID(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.taxID = v
}

// SetAmountPaid records the amount handed over by the customer.
func (c *Composer) SetAmountPaid(d decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amountPaid = d
}

// Total is Σ(unitPrice × quantity), always recomputed from the lines.
func (c *Composer) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Composer) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ChangeDue is amountPaid − total. It may be negative when underpaid; the
// composer surfaces that without blocking submission.
func (c *Composer) ChangeDue() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.amountPaid.Sub(c.totalLocked())
}

// Clear empties the cart and resets the form, ending the drafting session.
func (c *Composer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.customerID = ""
	c.customer = ""
	c.taxID = ""
	c.amountPaid = decimal.Zero
	c.draftKey = ""
}

// Draft assembles the submittable sale for the given open register.
// The idempotency key is minted once per drafting session and survives
// failed submissions, so a retry of a timed-out-but-applied request
// deduplicates server-side.
type Draft struct {
	Key          string
	CustomerID   string
	CustomerName string
	TaxID        string
	RegisterID   string
	Lines        []Line
	AmountPaid   decimal.Decimal
}

func (c *Composer) Draft(registerID string) (*Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	if c.draftKey == "" {
		c.draftKey = uuid.NewString()
	}
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return &Draft{
		Key:          c.draftKey,
		CustomerID:   c.customerID,
		CustomerName: c.customer,
		TaxID:        c.taxID,
		RegisterID:   registerID,
		Lines:        lines,
		AmountPaid:   c.amountPaid,
	}, nil
}

// Total recomputes the draft total from its lines.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Change is amountPaid − total.
func (d *Draft) Change() decimal.Decimal {
	return d.AmountPaid.Sub(d.Total())
}
