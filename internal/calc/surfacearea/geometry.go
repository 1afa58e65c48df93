package surfacearea

import "math"

// TankArea is the wetted internal area of a vertical cylindrical tank.
type TankArea struct {
	ShellM2  float64 `json:"shell_m2"`
	BottomM2 float64 `json:"bottom_m2"`
	TotalM2  float64 `json:"total_m2"`
}

// PipelineSurfaceArea returns the external area of a pipe run, A = π·D·L.
func PipelineSurfaceArea(diameterM, lengthM float64) float64 {
	return math.Pi * diameterM * lengthM
}

// InternalTankSurfaceArea returns the shell (π·D·h), flat bottom (π·r²) and their sum.
func InternalTankSurfaceArea(diameterM, heightM float64) TankArea {
	r := diameterM / 2
	shell := math.Pi * diameterM * heightM
	bottom := math.Pi * r * r
	return TankArea{
		ShellM2:  shell,
		BottomM2: bottom,
		TotalM2:  shell + bottom,
	}
}

// ExternalTankBottomAreaFlat returns the soil-side area of a flat tank bottom, A = π·r².
func ExternalTankBottomAreaFlat(diameterM float64) float64 {
	r := diameterM / 2
	return math.Pi * r * r
}
