package surfacearea

import (
	"math"
	"strconv"
	"strings"
)

type Unit string

const (
	UnitM  Unit = "m"
	UnitCM Unit = "cm"
	UnitMM Unit = "mm"
	UnitIN Unit = "in"
	UnitFT Unit = "ft"
)

// Units is the order length units are offered in.
var Units = []Unit{UnitM, UnitCM, UnitMM, UnitIN, UnitFT}

// 1 m² = 10.76391041671 ft²
const squareFeetPerSquareMeter = 10.76391041671

var metersPer = map[Unit]float64{
	UnitM:  1,
	UnitCM: 0.01,
	UnitMM: 0.001,
	UnitIN: 0.0254,
	UnitFT: 0.3048,
}

var unitAliases = map[string]Unit{
	"inch":   UnitIN,
	"inches": UnitIN,
	"feet":   UnitFT,
}

// ParseUnit normalizes a unit tag. It reports false for tags it does not know.
func ParseUnit(s string) (Unit, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if u, ok := unitAliases[s]; ok {
		return u, true
	}
	u := Unit(s)
	_, ok := metersPer[u]
	return u, ok
}

// Factor returns the multiplier from u to meters. Unknown units count as meters.
func (u Unit) Factor() float64 {
	if n, ok := ParseUnit(string(u)); ok {
		return metersPer[n]
	}
	return 1
}

// parseNumber reads a plain decimal number such as "12", "-0.5" or "1e3".
// Underscore separators and hex floats are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "_xX") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// ToMeters parses value as a decimal number and converts it to meters.
// Anything that does not parse to a finite number yields 0; callers validate first.
func ToMeters(value string, unit Unit) float64 {
	v, ok := parseNumber(value)
	if !ok {
		return 0
	}
	return ToMetersFloat(v, unit)
}

func ToMetersFloat(value float64, unit Unit) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value * unit.Factor()
}

func SquareMetersToSquareFeet(area float64) float64 {
	if math.IsNaN(area) || math.IsInf(area, 0) {
		return 0
	}
	return area * squareFeetPerSquareMeter
}
