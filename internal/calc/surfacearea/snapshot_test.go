package surfacearea

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c := NewCalculator()
	c.SelectStructure(TankInternal)
	c.SetInput(Diameter, "33")
	c.SetUnit(Diameter, UnitFT)
	c.SetInput(Height, "24")
	c.SetUnit(Height, UnitFT)
	require.NoError(t, c.Submit())
	want, _ := c.Result()

	data, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	restored := NewCalculator()
	restored.Restore(snap)

	assert.Equal(t, TankInternal, restored.Structure())
	assert.Equal(t, c.Fields(), restored.Fields())
	got, ok := restored.Result()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRestore_RecomputesResult(t *testing.T) {
	c := NewCalculator()
	c.Restore(Snapshot{
		Structure: TankExternalBottom,
		Inputs:    map[Field]string{Diameter: "12"},
		Units:     map[Field]Unit{Diameter: UnitM},
		Result:    &Result{Structure: TankExternalBottom, AreaM2: 1},
	})
	got, ok := c.Result()
	require.True(t, ok)
	assert.InDelta(t, 113.09734, got.AreaM2, 1e-5)
}

func TestRestore_FallsBackOnBadValues(t *testing.T) {
	c := NewCalculator()
	c.Restore(Snapshot{
		Structure: "sphere",
		Inputs:    map[Field]string{Diameter: "-1", Length: ""},
		Units:     map[Field]Unit{Diameter: "parsec", Length: "Feet"},
		Result:    &Result{Structure: Pipeline, AreaM2: 42},
	})
	assert.Equal(t, Pipeline, c.Structure())
	assert.Equal(t, FieldState{Value: "-1", Unit: UnitM, Error: FieldNotPositive}, c.Field(Diameter))
	assert.Equal(t, FieldState{Unit: UnitFT}, c.Field(Length))
	_, ok := c.Result()
	assert.False(t, ok, "a stale result must not survive invalid inputs")
	assert.NoError(t, c.Err())
}

func TestRestore_EmptySnapshot(t *testing.T) {
	c := NewCalculator()
	c.ApplyPreset(TankInternal)
	c.Restore(Snapshot{})
	assertDefaults(t, c)
}
