package surfacearea

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFieldRequired(t *testing.T) {
	want := map[Structure]map[Field]bool{
		Pipeline:           {Diameter: true, Length: true, Height: false},
		TankInternal:       {Diameter: true, Length: false, Height: true},
		TankExternalBottom: {Diameter: true, Length: false, Height: false},
	}
	for s, fields := range want {
		for f, required := range fields {
			assert.Equal(t, required, IsFieldRequired(s, f), "%s/%s", s, f)
		}
	}
	assert.False(t, IsFieldRequired("dome", Diameter))
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name      string
		structure Structure
		field     Field
		raw       string
		want      FieldError
	}{
		{name: "unused field ignores garbage", structure: Pipeline, field: Height, raw: "abc"},
		{name: "unused field ignores empty", structure: Pipeline, field: Height, raw: ""},
		{name: "unused field ignores negative", structure: TankExternalBottom, field: Length, raw: "-1"},
		{name: "missing", structure: Pipeline, field: Diameter, raw: "", want: FieldMissing},
		{name: "blank is missing", structure: TankInternal, field: Height, raw: "   ", want: FieldMissing},
		{name: "negative", structure: Pipeline, field: Diameter, raw: "-3", want: FieldNotPositive},
		{name: "zero", structure: Pipeline, field: Length, raw: "0", want: FieldNotPositive},
		{name: "not a number", structure: TankInternal, field: Diameter, raw: "ten", want: FieldNotPositive},
		{name: "infinity", structure: TankInternal, field: Diameter, raw: "Inf", want: FieldNotPositive},
		{name: "valid", structure: Pipeline, field: Diameter, raw: "1.2"},
		{name: "valid exponent", structure: Pipeline, field: Length, raw: "1e3"},
		{name: "underscore separator", structure: Pipeline, field: Length, raw: "1_000", want: FieldNotPositive},
		{name: "hex float", structure: Pipeline, field: Diameter, raw: "0x1p3", want: FieldNotPositive},
		{name: "hex integer", structure: TankInternal, field: Height, raw: "0X10", want: FieldNotPositive},
		{name: "overflowing literal", structure: Pipeline, field: Length, raw: "1e400", want: FieldNotPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(tt.structure, tt.field, tt.raw))
		})
	}
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("height")
	assert.True(t, ok)
	assert.Equal(t, Height, f)
	_, ok = ParseField("width")
	assert.False(t, ok)
}
