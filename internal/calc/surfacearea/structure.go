package surfacearea

import (
	"fmt"
	"math"
)

// Structure is the kind of structure whose surface area is sized.
type Structure string

const (
	Pipeline           Structure = "pipeline"
	TankInternal       Structure = "tank-internal"
	TankExternalBottom Structure = "tank-external-bottom"
)

// Structures lists the supported structures; the first one is the default.
var Structures = []Structure{Pipeline, TankInternal, TankExternalBottom}

// Dimensions are field values already converted to meters.
type Dimensions struct {
	DiameterM float64 `json:"diameter_m"`
	LengthM   float64 `json:"length_m,omitempty"`
	HeightM   float64 `json:"height_m,omitempty"`
}

// Result is the outcome of one calculation. Pipeline and external bottom
// results carry AreaM2, internal tank results carry Tank.
type Result struct {
	Structure Structure `json:"structure"`
	AreaM2    float64   `json:"area_m2,omitempty"`
	Tank      *TankArea `json:"tank,omitempty"`
}

// Area is the headline area in m²: the total for tanks, AreaM2 otherwise.
func (r Result) Area() float64 {
	if r.Tank != nil {
		return r.Tank.TotalM2
	}
	return r.AreaM2
}

// finite reports whether every area, in m² and in ft², is a finite number.
func (r Result) finite() bool {
	areas := []float64{r.AreaM2}
	if r.Tank != nil {
		areas = append(areas, r.Tank.ShellM2, r.Tank.BottomM2, r.Tank.TotalM2)
	}
	for _, a := range areas {
		if math.IsNaN(a) || math.IsInf(a*squareFeetPerSquareMeter, 0) {
			return false
		}
	}
	return true
}

type preset struct {
	inputs map[Field]string
	units  map[Field]Unit
}

// structureDef is the single dispatch table entry per structure: which fields
// it needs, how its area is computed and how the calculation is explained.
type structureDef struct {
	label    string
	required []Field
	compute  func(d Dimensions) Result
	formula  []string
	steps    func(d Dimensions) []string
	preset   preset
}

var structures = map[Structure]structureDef{
	Pipeline: {
		label:    "Pipeline",
		required: []Field{Diameter, Length},
		compute: func(d Dimensions) Result {
			return Result{Structure: Pipeline, AreaM2: PipelineSurfaceArea(d.DiameterM, d.LengthM)}
		},
		formula: []string{"A = π × D × L"},
		steps: func(d Dimensions) []string {
			return []string{fmt.Sprintf("A = π × %.4f × %.4f", d.DiameterM, d.LengthM)}
		},
		preset: preset{
			inputs: map[Field]string{Diameter: "12", Length: "1000"},
			units:  map[Field]Unit{Diameter: UnitIN, Length: UnitM},
		},
	},
	TankInternal: {
		label:    "Tank - Internal (Shell + Bottom)",
		required: []Field{Diameter, Height},
		compute: func(d Dimensions) Result {
			a := InternalTankSurfaceArea(d.DiameterM, d.HeightM)
			return Result{Structure: TankInternal, Tank: &a}
		},
		formula: []string{
			"Ashell = π × D × h",
			"Abottom = π × r² (r = D/2)",
			"Atotal = Ashell + Abottom",
		},
		steps: func(d Dimensions) []string {
			return []string{
				fmt.Sprintf("Ashell = π × %.4f × %.4f", d.DiameterM, d.HeightM),
				fmt.Sprintf("Abottom = π × %.4f²", d.DiameterM/2),
				"Atotal = Ashell + Abottom",
			}
		},
		preset: preset{
			inputs: map[Field]string{Diameter: "10", Height: "8"},
			units:  map[Field]Unit{Diameter: UnitM, Height: UnitM},
		},
	},
	TankExternalBottom: {
		label:    "Tank - External Bottom (Flat)",
		required: []Field{Diameter},
		compute: func(d Dimensions) Result {
			return Result{Structure: TankExternalBottom, AreaM2: ExternalTankBottomAreaFlat(d.DiameterM)}
		},
		formula: []string{"A = π × r² (r = D/2)"},
		steps: func(d Dimensions) []string {
			return []string{fmt.Sprintf("A = π × %.4f²", d.DiameterM/2)}
		},
		preset: preset{
			inputs: map[Field]string{Diameter: "12"},
			units:  map[Field]Unit{Diameter: UnitM},
		},
	},
}

func ParseStructure(s string) (Structure, bool) {
	_, ok := structures[Structure(s)]
	return Structure(s), ok
}

func (s Structure) Label() string {
	if def, ok := structures[s]; ok {
		return def.label
	}
	return string(s)
}

// Formula returns the formula lines shown next to the form.
func Formula(s Structure) []string {
	return structures[s].formula
}

// Steps returns the formula lines with the SI operands substituted.
func Steps(s Structure, d Dimensions) []string {
	def, ok := structures[s]
	if !ok {
		return nil
	}
	return def.steps(d)
}

// Compute evaluates the formula of s. It does not validate d.
func Compute(s Structure, d Dimensions) (Result, error) {
	def, ok := structures[s]
	if !ok {
		return Result{}, unsupported(s)
	}
	return def.compute(d), nil
}
