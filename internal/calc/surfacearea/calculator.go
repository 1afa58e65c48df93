package surfacearea

import "github.com/ansel1/merry"

// FieldState is the raw, unparsed value of one input with its unit and the
// result of the last validation.
type FieldState struct {
	Value string     `json:"value"`
	Unit  Unit       `json:"unit"`
	Error FieldError `json:"error,omitempty"`
}

// Calculator holds one surface area form. Every mutation clears the stored
// result, so a result always belongs to the current structure, inputs and
// units. It is not safe for concurrent use; the owning session serializes calls.
type Calculator struct {
	structure  Structure
	fields     map[Field]FieldState
	result     *Result
	err        error
	submitting bool
}

func NewCalculator() *Calculator {
	c := &Calculator{}
	c.Reset()
	return c
}

func (c *Calculator) Structure() Structure { return c.structure }

func (c *Calculator) Field(f Field) FieldState { return c.fields[f] }

func (c *Calculator) Fields() map[Field]FieldState {
	out := make(map[Field]FieldState, len(c.fields))
	for f, st := range c.fields {
		out[f] = st
	}
	return out
}

// Result returns the last computed result, if any.
func (c *Calculator) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// Err is the error of the last Submit, nil after any later mutation.
func (c *Calculator) Err() error { return c.err }

func (c *Calculator) Submitting() bool { return c.submitting }

func (c *Calculator) SelectStructure(s Structure) {
	c.structure = s
	c.invalidate()
	for _, f := range Fields {
		st := c.fields[f]
		st.Error = ValidateField(s, f, st.Value)
		c.fields[f] = st
	}
}

func (c *Calculator) SetInput(f Field, raw string) {
	st, ok := c.fields[f]
	if !ok {
		return
	}
	st.Value = raw
	st.Error = ValidateField(c.structure, f, raw)
	c.fields[f] = st
	c.invalidate()
}

func (c *Calculator) SetUnit(f Field, u Unit) {
	st, ok := c.fields[f]
	if !ok {
		return
	}
	st.Unit = u
	c.fields[f] = st
	c.invalidate()
}

// Submit validates the whole form, converts the relevant fields to meters and
// stores the result of the structure's formula. The returned error is also
// kept in Err: a *ValidationError for bad input, one matching
// ErrResultOutOfRange when the area overflows, or one matching
// ErrUnsupportedStructure when the dispatch table has no entry.
func (c *Calculator) Submit() error {
	c.submitting = true
	defer func() { c.submitting = false }()
	c.invalidate()

	verr := &ValidationError{Structure: c.structure, Fields: map[Field]FieldError{}}
	for _, f := range Fields {
		st := c.fields[f]
		st.Error = ValidateField(c.structure, f, st.Value)
		c.fields[f] = st
		if st.Error != "" {
			verr.Fields[f] = st.Error
		}
	}
	if len(verr.Fields) > 0 {
		c.err = verr
		return verr
	}

	res, err := Compute(c.structure, c.Dimensions())
	if err == nil && !res.finite() {
		err = merry.Wrap(ErrResultOutOfRange).Appendf("structure %s", c.structure)
	}
	if err != nil {
		c.err = err
		return err
	}
	c.result = &res
	return nil
}

// Dimensions converts the fields the current structure uses to meters.
// Unused fields stay zero. Values are not validated here.
func (c *Calculator) Dimensions() Dimensions {
	var d Dimensions
	for _, f := range structures[c.structure].required {
		st := c.fields[f]
		v := ToMeters(st.Value, st.Unit)
		switch f {
		case Diameter:
			d.DiameterM = v
		case Length:
			d.LengthM = v
		case Height:
			d.HeightM = v
		}
	}
	return d
}

func (c *Calculator) Reset() {
	c.structure = Structures[0]
	c.fields = make(map[Field]FieldState, len(Fields))
	for _, f := range Fields {
		c.fields[f] = FieldState{Unit: UnitM}
	}
	c.invalidate()
	c.submitting = false
}

// ApplyPreset loads example dimensions for s in one step.
func (c *Calculator) ApplyPreset(s Structure) {
	c.Reset()
	c.structure = s
	p := structures[s].preset
	for f, v := range p.inputs {
		st := c.fields[f]
		st.Value = v
		c.fields[f] = st
	}
	for f, u := range p.units {
		st := c.fields[f]
		st.Unit = u
		c.fields[f] = st
	}
}

func (c *Calculator) invalidate() {
	c.result = nil
	c.err = nil
}
