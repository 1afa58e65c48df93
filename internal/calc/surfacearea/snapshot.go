package surfacearea

// Snapshot is the persisted form of a Calculator.
type Snapshot struct {
	Structure Structure        `json:"structure"`
	Inputs    map[Field]string `json:"inputs"`
	Units     map[Field]Unit   `json:"units"`
	Result    *Result          `json:"result,omitempty"`
}

func (c *Calculator) Snapshot() Snapshot {
	s := Snapshot{
		Structure: c.structure,
		Inputs:    make(map[Field]string, len(Fields)),
		Units:     make(map[Field]Unit, len(Fields)),
	}
	for _, f := range Fields {
		s.Inputs[f] = c.fields[f].Value
		s.Units[f] = c.fields[f].Unit
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

// Restore replaces the state with s. Unknown structures and units fall back
// to the defaults. A stored result is not trusted: it is recomputed from the
// restored inputs and dropped if they no longer validate.
func (c *Calculator) Restore(s Snapshot) {
	c.Reset()
	if st, ok := ParseStructure(string(s.Structure)); ok {
		c.structure = st
	}
	for _, f := range Fields {
		st := c.fields[f]
		st.Value = s.Inputs[f]
		if u, ok := ParseUnit(string(s.Units[f])); ok {
			st.Unit = u
		}
		if st.Value != "" {
			st.Error = ValidateField(c.structure, f, st.Value)
		}
		c.fields[f] = st
	}
	if s.Result != nil && c.valid() {
		if err := c.Submit(); err != nil {
			c.invalidate()
		}
	}
}

func (c *Calculator) valid() bool {
	for _, f := range Fields {
		if ValidateField(c.structure, f, c.fields[f].Value) != "" {
			return false
		}
	}
	return true
}
