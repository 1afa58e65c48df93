package surfacearea

import (
	"math"
	"strings"
)

type Field string

const (
	Diameter Field = "diameter"
	Length   Field = "length"
	Height   Field = "height"
)

var Fields = []Field{Diameter, Length, Height}

func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// FieldError is the kind of problem with a field value. Empty means valid.
type FieldError string

const (
	FieldMissing     FieldError = "missing"
	FieldNotPositive FieldError = "non-positive-or-non-numeric"
)

func IsFieldRequired(s Structure, f Field) bool {
	for _, r := range structures[s].required {
		if r == f {
			return true
		}
	}
	return false
}

// ValidateField checks a raw value. Fields the structure does not use are
// always valid whatever they hold.
func ValidateField(s Structure, f Field, raw string) FieldError {
	if !IsFieldRequired(s, f) {
		return ""
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FieldMissing
	}
	v, ok := parseNumber(raw)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return FieldNotPositive
	}
	return ""
}
