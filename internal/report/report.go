// Package report flattens sale and cash-register history into read-only
// rows for printing and export. Reports are generated on demand from data
// the caller already fetched and are discarded after rendering.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/miromero13/spos-terminal/internal/model"
)

// SaleRow is one flattened sale.
type SaleRow struct {
	Code      string
	Date      time.Time
	ItemCount int
	Total     decimal.Decimal
}

// ProductTotal aggregates one product across the whole period.
type ProductTotal struct {
	Name     string
	Quantity int
	Total    decimal.Decimal
}

// SalesHistory is the sales report: summary block, top products by revenue
// and the per-sale detail table.
type SalesHistory struct {
	From        time.Time
	To          time.Time
	Count       int
	Total       decimal.Decimal
	Average     decimal.Decimal
	TopProducts []ProductTotal
	Rows        []SaleRow
}

// BuildSalesHistory aggregates the fetched sales. Sale totals follow the
// dashboard convention of reporting the paid amount.
func BuildSalesHistory(sales []model.Sale) *SalesHistory {
	h := &SalesHistory{Total: decimal.Zero, Average: decimal.Zero}
	byProduct := make(map[string]*ProductTotal)

	for _, s := range sales {
		h.Count++
		h.Total = h.Total.Add(s.PaidAmount)
		if h.From.IsZero() || s.CreatedAt.Before(h.From) {
			h.From = s.CreatedAt
		}
		if s.CreatedAt.After(h.To) {
			h.To = s.CreatedAt
		}
		h.Rows = append(h.Rows, SaleRow{
			Code:      s.Code,
			Date:      s.CreatedAt,
			ItemCount: len(s.Details),
			Total:     s.PaidAmount,
		})

		for _, d := range s.Details {
			name := ""
			if d.ProductDetail != nil {
				name = d.ProductDetail.Name
			}
			pt, ok := byProduct[name]
			if !ok {
				pt = &ProductTotal{Name: name, Total: decimal.Zero}
				byProduct[name] = pt
			}
			pt.Quantity += d.Quantity
			pt.Total = pt.Total.Add(d.Price.Mul(decimal.NewFromInt(int64(d.Quantity))))
		}
	}

	if h.Count > 0 {
		h.Average = h.Total.Div(decimal.NewFromInt(int64(h.Count))).Round(2)
	}

	for _, pt := range byProduct {
		h.TopProducts = append(h.TopProducts, *pt)
	}
	sort.Slice(h.TopProducts, func(i, j int) bool {
		return h.TopProducts[i].Total.GreaterThan(h.TopProducts[j].Total)
	})
	return h
}

// CashRow is one flattened register session.
type CashRow struct {
	Opening        time.Time
	Closing        *time.Time
	InitialBalance decimal.Decimal
	SalesTotal     decimal.Decimal
	PurchasesTotal decimal.Decimal
	CashOnHand     decimal.Decimal
	Cashier        string
	Open           bool
}

// BuildCashHistory flattens register sessions for the cash report.
func BuildCashHistory(cashes []model.CashRegister) []CashRow {
	rows := make([]CashRow, 0, len(cashes))
	for i := range cashes {
		c := &cashes[i]
		cashier := ""
		if c.User != nil {
			cashier = c.User.Name
		}
		rows = append(rows, CashRow{
			Opening:        c.Opening,
			Closing:        c.Closing,
			InitialBalance: c.InitialBalance,
			SalesTotal:     c.SalesTotal,
			PurchasesTotal: c.PurchasesTotal,
			CashOnHand:     c.CashOnHand(),
			Cashier:        cashier,
			Open:           c.IsOpen(),
		})
	}
	return rows
}
