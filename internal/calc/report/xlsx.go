package report

import (
	"io"

	"github.com/ansel1/merry"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Surface Area"

func WriteXLSX(w io.Writer, rep Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = merry.Wrap(cerr)
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return merry.Wrap(err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return merry.Wrap(err)
	}

	rows := [][]interface{}{
		{rep.Title},
		{"Project", rep.Project},
		{"Author", rep.Author},
		{"Date", rep.Date.Format("2006-01-02")},
		{"Report ID", rep.ID},
		{"Structure", rep.Structure},
		{},
		{"Input", "Value", "Unit", "SI (m)"},
	}
	headers := []int{1, len(rows)}
	for _, in := range rep.Inputs {
		rows = append(rows, []interface{}{in.Name, in.Value, string(in.Unit), in.Meters})
	}
	rows = append(rows, []interface{}{})
	for _, s := range rep.Steps {
		rows = append(rows, []interface{}{s})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Area", "m²", "ft²"})
	headers = append(headers, len(rows))
	for _, a := range rep.Areas {
		rows = append(rows, []interface{}{a.Label, a.M2, a.Ft2})
	}
	if rep.Notes != "" {
		rows = append(rows, []interface{}{}, []interface{}{"Notes", rep.Notes})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return merry.Wrap(err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return merry.Wrap(err)
		}
	}
	for _, r := range headers {
		start, _ := excelize.CoordinatesToCellName(1, r)
		end, _ := excelize.CoordinatesToCellName(4, r)
		if err := f.SetCellStyle(sheetName, start, end, bold); err != nil {
			return merry.Wrap(err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return merry.Wrap(err)
	}
	if err := f.SetColWidth(sheetName, "B", "D", 16); err != nil {
		return merry.Wrap(err)
	}
	return merry.Wrap(f.Write(w))
}
