package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ansel1/merry"
	"github.com/phpdave11/gofpdf"
)

func WritePDF(w io.Writer, rep Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252, which has × and ² but no π
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(strings.ReplaceAll(s, "π", "pi")) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(rep.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, text(fmt.Sprintf("Project: %s", rep.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, text(fmt.Sprintf("Author: %s", rep.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", rep.Date.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Report ID: %s", rep.ID))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, text(rep.Structure))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range []string{"Input", "Value", "Unit", "SI (m)"} {
		pdf.CellFormat(40, 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rep.Inputs {
		pdf.CellFormat(40, 7, text(row.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, text(row.Value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, string(row.Unit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.4f", row.Meters), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Courier", "", 10)
	for _, s := range append(append([]string{}, rep.Formula...), rep.Steps...) {
		pdf.Cell(0, 6, text(s))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range []string{"Area", "m²", "ft²"} {
		pdf.CellFormat(50, 7, text(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, a := range rep.Areas {
		pdf.CellFormat(50, 7, a.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.4f", a.M2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.4f", a.Ft2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if rep.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, text(rep.Notes), "", "L", false)
	}
	return merry.Wrap(pdf.Output(w))
}
