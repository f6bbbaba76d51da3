package report

// export.go: file export sinks for the history reports. Excel via excelize
// (sales summary and per-product detail) and PDF via fpdf (cash sessions).
// The caller hands over fully-prepared report data; exports have no other
// side effects.

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/miromero13/spos-terminal/internal/model"
)

const dateLayout = "02/01/2006 15:04"

// ExportSalesExcel writes the sales history workbook. The summary sheet is
// always present; detailed additionally writes one row per sold product.
func ExportSalesExcel(sales []model.Sale, detailed bool, path string) error {
	h := BuildSalesHistory(sales)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Ventas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Nro", "Fecha", "Cantidad prod.", "Total"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, head); err != nil {
			return fmt.Errorf("excel: %w", err)
		}
	}
	for i, row := range h.Rows {
		values := []interface{}{row.Code, row.Date.Format(dateLayout), row.ItemCount, toFloat(row.Total)}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("excel: %w", err)
			}
		}
	}
	totalRow := len(h.Rows) + 2
	cell, _ := excelize.CoordinatesToCellName(3, totalRow)
	_ = f.SetCellValue(sheet, cell, "TOTAL")
	cell, _ = excelize.CoordinatesToCellName(4, totalRow)
	_ = f.SetCellValue(sheet, cell, toFloat(h.Total))

	if detailed {
		if _, err := f.NewSheet("Detalle"); err != nil {
			return fmt.Errorf("excel: %w", err)
		}
		detailHeaders := []string{"Venta", "Producto", "Precio", "Cantidad", "Subtotal"}
		for i, head := range detailHeaders {
			c, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue("Detalle", c, head); err != nil {
				return fmt.Errorf("excel: %w", err)
			}
		}
		rowIdx := 2
		for _, s := range sales {
			for _, d := range s.Details {
				name := ""
				if d.ProductDetail != nil {
					name = d.ProductDetail.Name
				}
				subtotal := d.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
				values := []interface{}{s.Code, name, toFloat(d.Price), d.Quantity, toFloat(subtotal)}
				for j, v := range values {
					c, _ := excelize.CoordinatesToCellName(j+1, rowIdx)
					if err := f.SetCellValue("Detalle", c, v); err != nil {
						return fmt.Errorf("excel: %w", err)
					}
				}
				rowIdx++
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: save %s: %w", path, err)
	}
	return nil
}

// ExportCashPDF writes the register-session history table.
func ExportCashPDF(rows []CashRow, path string) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Reporte de Cajas", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Generado el "+time.Now().Format(dateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	headers := []string{"Apertura", "Cierre", "Monto Inicial", "Ventas", "Compras", "Efectivo", "Cajero", "Estado"}
	widths := []float64{38, 38, 28, 28, 28, 28, 45, 30}

	pdf.SetFont("Helvetica", "B", 8)
	for i, head := range headers {
		pdf.CellFormat(widths[i], 7, head, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		closing := "-"
		estado := "Caja abierta"
		if row.Closing != nil {
			closing = row.Closing.Format(dateLayout)
			estado = "Caja cerrada"
		}
		cells := []string{
			row.Opening.Format(dateLayout),
			closing,
			row.InitialBalance.StringFixed(2),
			row.SalesTotal.StringFixed(2),
			row.PurchasesTotal.StringFixed(2),
			row.CashOnHand.StringFixed(2),
			row.Cashier,
			estado,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: write %s: %w", path, err)
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
