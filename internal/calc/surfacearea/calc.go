package surfacearea

import (
	"net/http"

	"github.com/ansel1/merry"
)

var (
	ErrUnknownStructure = merry.New("unknown structure type").WithHTTPCode(http.StatusBadRequest)
	ErrUnknownUnit      = merry.New("unknown length unit").WithHTTPCode(http.StatusBadRequest)
	ErrUnknownField     = merry.New("unknown field").WithHTTPCode(http.StatusBadRequest)
)

// Input is a one-shot calculation request. Values are raw strings so they go
// through the same validation as the interactive form.
type Input struct {
	Structure    Structure `json:"structure"`
	Diameter     string    `json:"diameter"`
	DiameterUnit Unit      `json:"diameter_unit"`
	Length       string    `json:"length"`
	LengthUnit   Unit      `json:"length_unit"`
	Height       string    `json:"height"`
	HeightUnit   Unit      `json:"height_unit"`
}

// Normalize checks the structure and unit tags of in, filling defaults for
// empty ones and resolving unit aliases.
func (in Input) Normalize() (Input, error) {
	if in.Structure == "" {
		in.Structure = Structures[0]
	}
	if _, ok := ParseStructure(string(in.Structure)); !ok {
		return in, merry.Wrap(ErrUnknownStructure).Appendf("%q", in.Structure)
	}
	for _, u := range []*Unit{&in.DiameterUnit, &in.LengthUnit, &in.HeightUnit} {
		if *u == "" {
			*u = UnitM
			continue
		}
		n, ok := ParseUnit(string(*u))
		if !ok {
			return in, merry.Wrap(ErrUnknownUnit).Appendf("%q", *u)
		}
		*u = n
	}
	return in, nil
}

// Calculate runs a single validate, convert, compute pass over in.
func Calculate(in Input) (Result, error) {
	in, err := in.Normalize()
	if err != nil {
		return Result{}, err
	}
	c := NewCalculator()
	c.Load(in)
	if err := c.Submit(); err != nil {
		return Result{}, err
	}
	res, _ := c.Result()
	return res, nil
}

// Load replaces structure, inputs and units with those of in. Empty units mean meters.
func (c *Calculator) Load(in Input) {
	c.Reset()
	s := in.Structure
	if s == "" {
		s = Structures[0]
	}
	c.SelectStructure(s)
	set := func(f Field, v string, u Unit) {
		if u == "" {
			u = UnitM
		}
		c.SetUnit(f, u)
		if v != "" {
			c.SetInput(f, v)
		}
	}
	set(Diameter, in.Diameter, in.DiameterUnit)
	set(Length, in.Length, in.LengthUnit)
	set(Height, in.Height, in.HeightUnit)
}
