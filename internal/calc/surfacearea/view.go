package surfacearea

import (
	"errors"

	"github.com/ansel1/merry"
)

// View is what the dashboard renders for a calculator: the form, its
// per-field errors and, when present, the result in m² and ft².
type View struct {
	Structure  Structure           `json:"structure"`
	Label      string              `json:"label"`
	Fields     map[Field]FieldView `json:"fields"`
	Submitting bool                `json:"submitting"`
	Formula    []string            `json:"formula"`
	Result     *ResultView         `json:"result"`
	Steps      []string            `json:"steps,omitempty"`
	Error      *ErrorView          `json:"error,omitempty"`
}

type FieldView struct {
	FieldState
	Required bool `json:"required"`
}

type ResultView struct {
	Result
	AreaFt2   float64 `json:"area_ft2,omitempty"`
	ShellFt2  float64 `json:"shell_ft2,omitempty"`
	BottomFt2 float64 `json:"bottom_ft2,omitempty"`
	TotalFt2  float64 `json:"total_ft2,omitempty"`
}

type ErrorView struct {
	Kind    string               `json:"kind"`
	Message string               `json:"message"`
	Fields  map[Field]FieldError `json:"fields,omitempty"`
}

func NewResultView(r Result) *ResultView {
	v := &ResultView{Result: r}
	if r.Tank != nil {
		v.ShellFt2 = SquareMetersToSquareFeet(r.Tank.ShellM2)
		v.BottomFt2 = SquareMetersToSquareFeet(r.Tank.BottomM2)
		v.TotalFt2 = SquareMetersToSquareFeet(r.Tank.TotalM2)
	} else {
		v.AreaFt2 = SquareMetersToSquareFeet(r.AreaM2)
	}
	return v
}

func NewErrorView(err error) *ErrorView {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &ErrorView{Kind: "validation", Message: verr.Error(), Fields: verr.Fields}
	}
	if merry.Is(err, ErrResultOutOfRange) {
		return &ErrorView{Kind: "range", Message: merry.Message(ErrResultOutOfRange)}
	}
	if merry.HTTPCode(err) < 500 {
		return &ErrorView{Kind: "input", Message: err.Error()}
	}
	return &ErrorView{Kind: "internal", Message: "calculation failed"}
}

func NewView(c *Calculator) View {
	v := View{
		Structure:  c.Structure(),
		Label:      c.Structure().Label(),
		Fields:     make(map[Field]FieldView, len(Fields)),
		Submitting: c.Submitting(),
		Formula:    Formula(c.Structure()),
		Error:      NewErrorView(c.Err()),
	}
	for f, st := range c.Fields() {
		v.Fields[f] = FieldView{FieldState: st, Required: IsFieldRequired(c.Structure(), f)}
	}
	if res, ok := c.Result(); ok {
		v.Result = NewResultView(res)
		v.Steps = Steps(c.Structure(), c.Dimensions())
	}
	return v
}
