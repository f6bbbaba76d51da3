package sale

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/miromero13/spos-terminal/internal/api"
	"github.com/miromero13/spos-terminal/internal/model"
	"github.com/miromero13/spos-terminal/internal/register"
	"github.com/miromero13/spos-terminal/internal/ticket"
)

// ErrSubmitInFlight rejects a second submission while one is outstanding.
var ErrSubmitInFlight = errors.New("ya hay una venta en curso")

// SubmitOptions carries per-submission intent. PrintAfter is an explicit
// parameter, not captured state, so concurrent intents cannot race.
type SubmitOptions struct {
	PrintAfter bool
}

// Submitter turns a composed sale into a persisted record and a ticket.
type Submitter struct {
	api      *api.Client
	register *register.Manager
	printer  ticket.Printer
	cashier  string
	log      zerolog.Logger

	inFlight chan struct{}
}

// NewSubmitter wires the submission path. printer may be nil when no print
// sink is configured; cashier is the operator name printed on tickets.
func NewSubmitter(client *api.Client, reg *register.Manager, printer ticket.Printer, cashier string, logger zerolog.Logger) *Submitter {
	return &Submitter{
		api:      client,
		register: reg,
		printer:  printer,
		cashier:  cashier,
		log:      logger.With().Str("component", "sale").Logger(),
		inFlight: make(chan struct{}, 1),
	}
}

// Submit drafts the composer's cart against the open register and sends it.
// On success the cart is cleared, the register summary invalidated, the
// ticket finalized with the server code, and printed when requested.
// On failure the cart is left intact for retry; the in-flight guard is
// always released.
func (s *Submitter) Submit(ctx context.Context, c *Composer, opts SubmitOptions) (*ticket.Ticket, error) {
	select {
	case s.inFlight <- struct{}{}:
	default:
		return nil, ErrSubmitInFlight
	}
	defer func() { <-s.inFlight }()

	registerID, err := s.register.RegisterID()
	if err != nil {
		return nil, err
	}

	draft, err := c.Draft(registerID)
	if err != nil {
		return nil, err
	}

	req := model.CreateSaleRequest{
		Customer:     draft.CustomerID,
		CashRegister: draft.RegisterID,
		NIT:          draft.TaxID,
		Details:      make([]model.CreateSaleDetail, 0, len(draft.Lines)),
	}
	for _, l := range draft.Lines {
		req.Details = append(req.Details, model.CreateSaleDetail{
			Product:  l.ProductID,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
		})
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	// Ticket projection is built up front with the placeholder code, the
	// same way the dashboard shows it while the request is pending.
	items := make([]ticket.Item, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		items = append(items, ticket.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	t := ticket.New(items, draft.Total(), draft.AmountPaid, draft.CustomerName, draft.TaxID, s.cashier)

	var result model.CreateSaleResult
	headers := map[string]string{"X-Idempotency-Key": draft.Key}
	if err := s.api.Create(ctx, api.EndpointSales, req, &result, headers); err != nil {
		s.log.Warn().Err(err).Msg("sale submission failed")
		return nil, err
	}

	t.Finalize(result.Code)
	c.Clear()

	// Totals are server-derived; re-fetch so the summary views stay
	// consistent. A refresh failure does not undo the completed sale.
	if err := s.register.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("register refresh after sale failed")
	}

	s.log.Info().
		Str("code", t.Code).
		Str("total", t.Total.StringFixed(2)).
		Int("items", len(t.Items)).
		Msg("sale registered")

	if opts.PrintAfter && s.printer != nil {
		if err := s.printer.PrintTicket(t); err != nil {
			s.log.Warn().Err(err).Str("code", t.Code).Msg("ticket print failed")
		}
	}
	return t, nil
}
