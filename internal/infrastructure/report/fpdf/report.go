// Package fpdf renders contract search results as a downloadable PDF
// report, one record per page.
package fpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

type Renderer struct {
	title string
}

func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "Reporte de Búsqueda de Contratos"
	}
	return &Renderer{title: title}
}

func (r *Renderer) Render(result domain.ContractSearchResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(r.title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Término de búsqueda: %s", result.Query)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Resultados encontrados: %d", len(result.Records))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado: %s", time.Now().Format("2006-01-02 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(result.Records) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, tr("No se encontraron contratos para el término indicado."), "", 1, "L", false, 0, "")
	}

	for i, record := range result.Records {
		if i > 0 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Registro %d de %d", i+1, len(result.Records))), "B", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, column := range result.Columns {
			value := record[column]
			if value == "" {
				continue
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(55, 6, tr(column), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, tr(value), "", "L", false)
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contract report: %w", err)
	}
	return buf.Bytes(), nil
}
