package surfacearea

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineSurfaceArea(t *testing.T) {
	assert.InDelta(t, math.Pi, PipelineSurfaceArea(1, 1), 1e-12)
	assert.InDelta(t, 957.5574, PipelineSurfaceArea(0.3048, 1000), 1e-4)
	assert.Equal(t, 0.0, PipelineSurfaceArea(0, 10))
}

func TestInternalTankSurfaceArea(t *testing.T) {
	a := InternalTankSurfaceArea(10, 8)
	assert.InDelta(t, 251.32741, a.ShellM2, 1e-5)
	assert.InDelta(t, 78.53982, a.BottomM2, 1e-5)
	assert.InDelta(t, 329.86723, a.TotalM2, 1e-5)
	assert.Equal(t, a.ShellM2+a.BottomM2, a.TotalM2)
}

func TestExternalTankBottomAreaFlat(t *testing.T) {
	assert.InDelta(t, 113.09734, ExternalTankBottomAreaFlat(12), 1e-5)
	assert.InDelta(t, math.Pi*36, ExternalTankBottomAreaFlat(-12), 1e-9)
}

func TestCompute(t *testing.T) {
	res, err := Compute(Pipeline, Dimensions{DiameterM: 1, LengthM: 1})
	assert.NoError(t, err)
	assert.Equal(t, Pipeline, res.Structure)
	assert.InDelta(t, math.Pi, res.Area(), 1e-12)

	res, err = Compute(TankInternal, Dimensions{DiameterM: 10, HeightM: 8})
	assert.NoError(t, err)
	if assert.NotNil(t, res.Tank) {
		assert.InDelta(t, 329.86723, res.Area(), 1e-5)
	}

	_, err = Compute("dome", Dimensions{DiameterM: 1})
	assert.Error(t, err)
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []string{"A = π × 0.3048 × 1000.0000"},
		Steps(Pipeline, Dimensions{DiameterM: 0.3048, LengthM: 1000}))
	assert.Equal(t, []string{
		"Ashell = π × 10.0000 × 8.0000",
		"Abottom = π × 5.0000²",
		"Atotal = Ashell + Abottom",
	}, Steps(TankInternal, Dimensions{DiameterM: 10, HeightM: 8}))
	assert.Equal(t, []string{"A = π × 6.0000²"}, Steps(TankExternalBottom, Dimensions{DiameterM: 12}))
	assert.Nil(t, Steps("dome", Dimensions{}))
}
