package infra

// Closing-report PDF generation using go-pdf/fpdf. The report shows the
// opening float, the per-method breakdown (ingresos / egresos / neto),
// the final total and the expected cash on hand for the arqueo.
// The output file is saved to storagePath/cierre_{sesion}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pizzapos/internal/caja"

	"github.com/go-pdf/fpdf"
)

// CierreReporte carries everything the PDF needs about a closed session.
type CierreReporte struct {
	SesionID string
	OpenedAt time.Time
	ClosedAt time.Time
	Cierre   caja.Cierre
}

// GenerateCierrePDF renders the closing report for a session.
// storagePath is the directory where the PDF is written (created if needed).
// Returns the absolute path to the generated file.
func GenerateCierrePDF(rep CierreReporte, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", rep.SesionID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Cierre de Caja", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sesion "+rep.SesionID, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Apertura %s  -  Cierre %s",
			rep.OpenedAt.Format("02/01/2006 15:04"),
			rep.ClosedAt.Format("02/01/2006 15:04")),
		"", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.6, 6, "Monto de apertura:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, "$"+rep.Cierre.MontoApertura.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	// Per-method breakdown
	col1 := contentW * 0.34
	col2 := contentW * 0.22
	col3 := contentW * 0.22
	col4 := contentW * 0.22

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Metodo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Ingresos", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Egresos", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Neto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, m := range rep.Cierre.Metodos {
		pdf.CellFormat(col1, 6, m.Metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "$"+m.Ingresos.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+m.Egresos.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, caja.FormatoSigno(m.Neto), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.6, 6, "Total ingresos:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, "$"+rep.Cierre.Ingresos.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 6, "Total egresos:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, "$"+rep.Cierre.Egresos.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.6, 8, "TOTAL FINAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 8, caja.FormatoSigno(rep.Cierre.TotalFinal), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.6, 7, "Efectivo esperado en caja:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, caja.FormatoSigno(rep.Cierre.EfectivoDisponible), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "El efectivo esperado solo suma movimientos en efectivo; el total final suma todos los metodos.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
