package surfacearea

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{Diameter: "1", Length: "1"})
	require.NoError(t, err)
	assert.Equal(t, Pipeline, res.Structure)
	assert.InDelta(t, math.Pi, res.AreaM2, 1e-12)

	res, err = Calculate(Input{
		Structure:    TankExternalBottom,
		Diameter:     "1200",
		DiameterUnit: "cm",
	})
	require.NoError(t, err)
	assert.InDelta(t, 113.09734, res.AreaM2, 1e-5)

	res, err = Calculate(Input{
		Structure:    TankInternal,
		Diameter:     "393.7007874",
		DiameterUnit: "inches",
		Height:       "8",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Tank)
	assert.InDelta(t, 329.86723, res.Tank.TotalM2, 1e-5)
}

func TestCalculate_Errors(t *testing.T) {
	_, err := Calculate(Input{Structure: TankInternal, Diameter: "10"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[Field]FieldError{Height: FieldMissing}, verr.Fields)

	_, err = Calculate(Input{Structure: "sphere", Diameter: "1"})
	assert.True(t, merry.Is(err, ErrUnknownStructure))
	assert.Equal(t, http.StatusBadRequest, merry.HTTPCode(err))

	_, err = Calculate(Input{Diameter: "1", Length: "1", LengthUnit: "yd"})
	assert.True(t, merry.Is(err, ErrUnknownUnit))
}

func TestInputNormalize(t *testing.T) {
	in, err := Input{DiameterUnit: "Feet", HeightUnit: "INCH"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Pipeline, in.Structure)
	assert.Equal(t, UnitFT, in.DiameterUnit)
	assert.Equal(t, UnitM, in.LengthUnit)
	assert.Equal(t, UnitIN, in.HeightUnit)
}

func TestCalculateBatch(t *testing.T) {
	res, err := CalculateBatch(BatchInput{Items: []Input{
		{Diameter: "1", Length: "1"},
		{Structure: TankInternal, Diameter: "10"},
		{Structure: TankExternalBottom, Diameter: "12"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Results, 3)

	assert.InDelta(t, math.Pi, res.Results[0].Result.AreaM2, 1e-12)
	assert.InDelta(t, math.Pi*SquareMetersToSquareFeet(1), res.Results[0].Result.AreaFt2, 1e-9)
	assert.Nil(t, res.Results[1].Result)
	assert.Equal(t, "validation", res.Results[1].Error.Kind)
	assert.Equal(t, 2, res.Results[2].Index)

	_, err = CalculateBatch(BatchInput{})
	assert.Error(t, err)
	_, err = CalculateBatch(BatchInput{Items: make([]Input, MaxBatchItems+1)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, merry.HTTPCode(err))
}
