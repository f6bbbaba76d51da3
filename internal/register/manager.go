// Package register owns the cash-register session workflow: whether the
// operator has an open register, its running totals, and the open/close
// transitions. The backend arbitrates everything; the manager holds a
// read-only projection and refreshes it after every successful transition.
package register

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/miromero13/spos-terminal/internal/api"
	"github.com/miromero13/spos-terminal/internal/model"
)

var (
	// ErrRegisterAlreadyOpen rejects open→open locally, before any network
	// call. The backend enforces the same rule for races across terminals.
	ErrRegisterAlreadyOpen = errors.New("ya existe una caja abierta")
	// ErrNoOpenRegister rejects close and summary queries while no session
	// is open.
	ErrNoOpenRegister = errors.New("no hay una caja abierta")
)

// Summary is the reconciled snapshot of an open (or just-closed) session.
type Summary struct {
	RegisterID     string
	Operator       string
	OpenedAt       time.Time
	InitialBalance decimal.Decimal
	PurchasesTotal decimal.Decimal
	SalesTotal     decimal.Decimal
	CashOnHand     decimal.Decimal
}

// Manager is the register session state machine. All methods are safe for
// concurrent use; transitions are serialized by the internal mutex.
type Manager struct {
	api *api.Client
	log zerolog.Logger

	mu         sync.Mutex
	current    *model.CashRegister
	lastClosed *Summary
}

func NewManager(client *api.Client, logger zerolog.Logger) *Manager {
	return &Manager{
		api: client,
		log: logger.With().Str("component", "register").Logger(),
	}
}

// Refresh re-fetches the open-register projection for the current operator.
// It is called after every successful transition and may be called at any
// time to resynchronize with the backend.
func (m *Manager) Refresh(ctx context.Context) error {
	var vc model.ValidateCash
	if err := m.api.Get(ctx, api.EndpointCashValidate, &vc); err != nil {
		return fmt.Errorf("validate open register: %w", err)
	}

	if !vc.Validate {
		m.mu.Lock()
		m.current = nil
		m.mu.Unlock()
		return nil
	}

	var cash model.CashRegister
	if err := m.api.Get(ctx, api.EndpointCash+vc.ID+"/", &cash); err != nil {
		return fmt.Errorf("fetch register %s: %w", vc.ID, err)
	}

	m.mu.Lock()
	m.current = &cash
	m.mu.Unlock()
	return nil
}

// IsOpen reports whether the operator currently has an open register.
func (m *Manager) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// RegisterID returns the id of the open register.
func (m *Manager) RegisterID() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return "", ErrNoOpenRegister
	}
	return m.current.ID, nil
}

// Open transitions NoOpenRegister → RegisterOpen. Valid only when no
// register is open for the operator; on success the projection is refreshed
// so dependent views observe the server-assigned totals.
func (m *Manager) Open(ctx context.Context, initialBalance decimal.Decimal, observations string) (*model.CashRegister, error) {
	m.mu.Lock()
	if m.current != nil {
		m.mu.Unlock()
		return nil, ErrRegisterAlreadyOpen
	}
	m.mu.Unlock()

	req := model.OpenCashRequest{InitialBalance: initialBalance, Observations: observations}
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	if err := m.api.Create(ctx, api.EndpointCash, req, nil, nil); err != nil {
		// Server-detected conflicts (another terminal won the race) leave
		// the state machine where it was.
		return nil, err
	}
	m.log.Info().Str("initial_balance", initialBalance.StringFixed(2)).Msg("register opened")

	// A new session begins; the previous close report is no longer current.
	m.mu.Lock()
	m.lastClosed = nil
	m.mu.Unlock()

	if err := m.Refresh(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, nil
}

// Close transitions RegisterOpen → NoOpenRegister. The close report is
// fetched after the server freezes the totals, retained transiently and
// discarded on the next open.
func (m *Manager) Close(ctx context.Context) (*Summary, error) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil, ErrNoOpenRegister
	}
	id := m.current.ID
	m.mu.Unlock()

	if err := m.api.Create(ctx, api.EndpointCashClose, nil, nil, nil); err != nil {
		// Failure leaves the session open and is reported to the caller.
		return nil, err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	// Totals are frozen now; re-fetching here makes the report exact even
	// when a sale landed after the last summary read.
	var cash model.CashRegister
	if err := m.api.Get(ctx, api.EndpointCash+id+"/", &cash); err != nil {
		return nil, fmt.Errorf("fetch closed register %s: %w", id, err)
	}
	summary := newSummary(&cash)

	m.mu.Lock()
	m.lastClosed = summary
	m.mu.Unlock()

	m.log.Info().
		Str("register", summary.RegisterID).
		Str("cash_on_hand", summary.CashOnHand.StringFixed(2)).
		Msg("register closed")
	return summary, nil
}

// Summary re-fetches the open register and derives the reconciled totals:
// cashOnHand = salesTotal + initialBalance − purchasesTotal.
func (m *Manager) Summary(ctx context.Context) (*Summary, error) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil, ErrNoOpenRegister
	}
	id := m.current.ID
	m.mu.Unlock()

	// Totals are always server-derived; no local optimistic updates.
	var cash model.CashRegister
	if err := m.api.Get(ctx, api.EndpointCash+id+"/", &cash); err != nil {
		return nil, fmt.Errorf("fetch register %s: %w", id, err)
	}

	m.mu.Lock()
	m.current = &cash
	m.mu.Unlock()

	return newSummary(&cash), nil
}

func newSummary(cash *model.CashRegister) *Summary {
	operator := ""
	if cash.User != nil {
		operator = cash.User.Name
	}
	return &Summary{
		RegisterID:     cash.ID,
		Operator:       operator,
		OpenedAt:       cash.Opening,
		InitialBalance: cash.InitialBalance,
		PurchasesTotal: cash.PurchasesTotal,
		SalesTotal:     cash.SalesTotal,
		CashOnHand:     cash.CashOnHand(),
	}
}

// LastCloseReport returns the summary retained from the most recent close,
// or nil when none is held.
func (m *Manager) LastCloseReport() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastClosed
}
