package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportSalesExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ventas.xlsx")
	require.NoError(t, ExportSalesExcel(sampleSales(), true, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	code, err := f.GetCellValue("Ventas", "A2")
	require.NoError(t, err)
	assert.Equal(t, "000001", code)

	total, err := f.GetCellValue("Ventas", "D4")
	require.NoError(t, err)
	assert.Equal(t, "46", total)

	// Detailed export adds one row per sold product.
	detail, err := f.GetRows("Detalle")
	require.NoError(t, err)
	assert.Len(t, detail, 4) // header + 3 detail lines
}

func TestExportSalesExcelSummaryOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ventas.xlsx")
	require.NoError(t, ExportSalesExcel(sampleSales(), false, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ventas"}, f.GetSheetList())
}

func TestExportCashPDF(t *testing.T) {
	closed := time.Date(2025, time.March, 2, 20, 0, 0, 0, time.UTC)
	rows := []CashRow{
		{
			Opening:        time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC),
			Closing:        &closed,
			InitialBalance: decimal.NewFromInt(1000),
			SalesTotal:     decimal.NewFromInt(500),
			PurchasesTotal: decimal.NewFromInt(200),
			CashOnHand:     decimal.NewFromInt(1300),
			Cashier:        "Maria",
		},
	}

	path := filepath.Join(t.TempDir(), "cajas.pdf")
	require.NoError(t, ExportCashPDF(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
