package ticket

// pdf.go: PDF print sink using go-pdf/fpdf. Renders an A7-size
// thermal-receipt-style ticket:
//   - Business header (name, NIT, address, phone)
//   - Sale code, date, customer and NIT
//   - Item table (quantity, name, unit price, amount)
//   - TOTAL / PAGADO / CAMBIO block
//
// The output file is saved to storagePath/ticket_{code}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// Business is the header block printed on every ticket.
type Business struct {
	Name    string
	NIT     string
	Address string
	Phone   string
}

// PDFPrinter writes tickets as PDF files.
type PDFPrinter struct {
	Business    Business
	StoragePath string
}

func NewPDFPrinter(business Business, storagePath string) *PDFPrinter {
	return &PDFPrinter{Business: business, StoragePath: storagePath}
}

// PrintTicket renders t and writes the file. The returned path is logged by
// callers; the ticket itself is discarded afterwards.
func (p *PDFPrinter) PrintTicket(t *Ticket) error {
	_, err := p.Render(t)
	return err
}

// Render writes the PDF and returns its absolute path.
func (p *PDFPrinter) Render(t *Ticket) (string, error) {
	if err := os.MkdirAll(p.StoragePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(p.StoragePath, fmt.Sprintf("ticket_%s.pdf", t.Code))

	// A7 is 74mm x 105mm, close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 6, p.Business.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "NIT: "+p.Business.NIT, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, p.Business.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, "Tel: "+p.Business.Phone, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, "Vendedor: "+t.Cashier, "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "NOTA DE VENTA", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Nro: "+t.Code, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Fecha: "+t.Date.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if t.Customer != "" {
		pdf.CellFormat(contentW, 4, "Cliente: "+t.Customer, "", 1, "L", false, 0, "")
	}
	if t.NIT != "" {
		pdf.CellFormat(contentW, 4, "NIT: "+t.NIT, "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)

	col1 := contentW * 0.12 // qty
	col2 := contentW * 0.44 // name
	col3 := contentW * 0.22 // unit price
	col4 := contentW * 0.22 // amount

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Cant.", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "P.Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range t.Items {
		name := item.Name
		if len(name) > 18 {
			name = name[:17] + "…"
		}
		pdf.CellFormat(col1, 5, fmt.Sprintf("%d", item.Quantity), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1+col2+col3, 5, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 5, "Bs. "+t.Total.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 5, "PAGADO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 5, "Bs. "+t.Paid.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 5, "CAMBIO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 5, "Bs. "+t.Change.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, "Vuelva pronto", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
