// Package importer reads batches of surface area inputs from spreadsheets.
package importer

import (
	"io"
	"strings"

	"CPCalc/internal/calc/surfacearea"

	"github.com/ansel1/merry"
	"github.com/xuri/excelize/v2"
)

// Columns is the expected header row, in order.
var Columns = []string{"structure", "diameter", "diameter_unit", "length", "length_unit", "height", "height_unit"}

var ErrEmptySheet = merry.New("sheet has no data rows").WithHTTPCode(400)

type Row struct {
	Line  int               `json:"line"`
	Input surfacearea.Input `json:"input"`
}

// ReadXLSX parses the first sheet of an XLSX workbook. The first row is a
// header; blank rows are skipped. Missing unit cells mean meters.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, merry.Prepend(err, "open workbook").WithHTTPCode(400)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, merry.Wrap(err).WithHTTPCode(400)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		out = append(out, Row{Line: i + 1, Input: parseRow(row)})
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func parseRow(row []string) surfacearea.Input {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return surfacearea.Input{
		Structure:    surfacearea.Structure(strings.ToLower(cell(0))),
		Diameter:     cell(1),
		DiameterUnit: surfacearea.Unit(cell(2)),
		Length:       cell(3),
		LengthUnit:   surfacearea.Unit(cell(4)),
		Height:       cell(5),
		HeightUnit:   surfacearea.Unit(cell(6)),
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteTemplate writes an empty workbook with the header row and one example per structure.
func WriteTemplate(w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = merry.Wrap(cerr)
		}
	}()
	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	examples := [][]interface{}{
		header,
		{string(surfacearea.Pipeline), "12", "in", "1000", "m", "", ""},
		{string(surfacearea.TankInternal), "10", "m", "", "", "8", "m"},
		{string(surfacearea.TankExternalBottom), "12", "m", "", "", "", ""},
	}
	for i, row := range examples {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return merry.Wrap(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return merry.Wrap(err)
		}
	}
	return merry.Wrap(f.Write(w))
}
