// Package report renders a surface area calculation as a PDF or XLSX document.
package report

import (
	"time"

	"CPCalc/internal/calc/surfacearea"

	"github.com/google/uuid"
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

type InputRow struct {
	Name   string
	Value  string
	Unit   surfacearea.Unit
	Meters float64
}

type AreaLine struct {
	Label string
	M2    float64
	Ft2   float64
}

type Report struct {
	ID        string
	Title     string
	Project   string
	Author    string
	Notes     string
	Date      time.Time
	Structure string
	Inputs    []InputRow
	Formula   []string
	Steps     []string
	Areas     []AreaLine
}

// New builds a report from the calculator's current result. It reports
// false when there is no result to report on.
func New(in Input, c *surfacearea.Calculator, now time.Time) (Report, bool) {
	res, ok := c.Result()
	if !ok {
		return Report{}, false
	}
	if in.Title == "" {
		in.Title = "Surface Area Calculation"
	}
	s := c.Structure()
	rep := Report{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Project:   in.Project,
		Author:    in.Author,
		Notes:     in.Notes,
		Date:      now,
		Structure: s.Label(),
		Formula:   surfacearea.Formula(s),
		Steps:     surfacearea.Steps(s, c.Dimensions()),
	}
	for _, f := range surfacearea.Fields {
		if !surfacearea.IsFieldRequired(s, f) {
			continue
		}
		st := c.Field(f)
		rep.Inputs = append(rep.Inputs, InputRow{
			Name:   string(f),
			Value:  st.Value,
			Unit:   st.Unit,
			Meters: surfacearea.ToMeters(st.Value, st.Unit),
		})
	}
	line := func(label string, m2 float64) AreaLine {
		return AreaLine{Label: label, M2: m2, Ft2: surfacearea.SquareMetersToSquareFeet(m2)}
	}
	if res.Tank != nil {
		rep.Areas = []AreaLine{
			line("Shell", res.Tank.ShellM2),
			line("Bottom", res.Tank.BottomM2),
			line("Total", res.Tank.TotalM2),
		}
	} else {
		rep.Areas = []AreaLine{line("Area", res.AreaM2)}
	}
	return rep, true
}
