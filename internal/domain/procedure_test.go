package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permanentProcedure() Procedure {
	return Procedure{
		ID:         "haircut",
		Name:       "Haircut",
		Complexity: ComplexityEasy,
		Kind:       KindPermanent,
		Durations: DurationTable{
			HairDensityThin:   {HairLengthShort: 60, HairLengthMedium: 60, HairLengthLong: 90},
			HairDensityMedium: {HairLengthShort: 60, HairLengthMedium: 60, HairLengthLong: 90},
			HairDensityThick:  {HairLengthShort: 60, HairLengthMedium: 60, HairLengthLong: 90},
		},
	}
}

func TestProcedurePlanPermanent(t *testing.T) {
	p := permanentProcedure()

	plan, err := p.Plan(HairLengthLong, HairDensityThin)
	require.NoError(t, err)
	assert.Equal(t, 90, plan.TotalMinutes)
	assert.Equal(t, []int{90}, plan.Stages)
	assert.False(t, plan.IsMultiStage())
}

func TestProcedurePlanFixed(t *testing.T) {
	p := Procedure{ID: "ext", Name: "Hair ext full", Complexity: ComplexityAverage, Kind: KindPermanent, FixedMinutes: 120}

	plan, err := p.Plan(HairLengthShort, HairDensityThick)
	require.NoError(t, err)
	assert.Equal(t, DurationPlan{TotalMinutes: 120, Stages: []int{120}}, plan)
	require.NoError(t, p.Validate())
}

func TestProcedurePlanNonPermanent(t *testing.T) {
	p := Procedure{
		ID:          "simple_color",
		Name:        "Simple Color",
		Complexity:  ComplexityEasy,
		Kind:        KindNonPermanent,
		Stage1:      UniformTable(10),
		WaitMinutes: 40,
		Stage3:      UniformTable(10),
	}
	p.Stage1[HairDensityThick][HairLengthLong] = 20

	plan, err := p.Plan(HairLengthShort, HairDensityThin)
	require.NoError(t, err)
	assert.Equal(t, 60, plan.TotalMinutes)
	assert.Equal(t, []int{10, 40, 10}, plan.Stages)
	assert.True(t, plan.IsMultiStage())

	plan, err = p.Plan(HairLengthLong, HairDensityThick)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 40, 10}, plan.Stages)
	assert.Equal(t, 70, plan.TotalMinutes)
}

func TestProcedurePlanErrors(t *testing.T) {
	p := permanentProcedure()
	delete(p.Durations[HairDensityMedium], HairLengthMedium)

	tests := []struct {
		name    string
		length  HairLength
		density HairDensity
	}{
		{name: "missing entry", length: HairLengthMedium, density: HairDensityMedium},
		{name: "unknown length", length: "HUGE", density: HairDensityThin},
		{name: "unknown density", length: HairLengthShort, density: "SPARSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Plan(tt.length, tt.density)
			assert.ErrorIs(t, err, ErrDurationNotConfigured)
		})
	}

	assert.ErrorIs(t, p.Validate(), ErrDurationNotConfigured)
}

func TestProcedureValidate(t *testing.T) {
	p := permanentProcedure()
	require.NoError(t, p.Validate())

	p.Durations[HairDensityThin][HairLengthShort] = 0
	assert.Error(t, p.Validate())

	bad := Procedure{ID: "x", Name: "X", Complexity: "HARD", Kind: KindPermanent, FixedMinutes: 10}
	assert.Error(t, bad.Validate())

	noWait := Procedure{ID: "y", Name: "Y", Complexity: ComplexityEasy, Kind: KindNonPermanent,
		Stage1: UniformTable(10), Stage3: UniformTable(10)}
	assert.Error(t, noWait.Validate())
}
