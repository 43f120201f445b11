package engine

import (
	"testing"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios_Defaults(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	require.Len(t, scenarios, 3)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "Skip Leading Gaps", scenarios[1].Name)
	assert.False(t, scenarios[1].Settings.Fullable)
	assert.Equal(t, "Horizontal Orientation", scenarios[2].Name)
	assert.Equal(t, model.Horizontal, scenarios[2].Settings.Orientation)
}

func TestBuildDefaultScenarios_GridVariants(t *testing.T) {
	s := model.DefaultSettings()
	s.Fullable = false
	s.Orientation = model.Horizontal
	s.UnitSize = 8
	s.GroupCount = 3

	scenarios := BuildDefaultScenarios(s)

	require.Len(t, scenarios, 5)
	assert.Equal(t, "Fill Leading Gaps", scenarios[1].Name)
	assert.Equal(t, "Vertical Orientation", scenarios[2].Name)
	assert.Equal(t, 1, scenarios[3].Settings.UnitSize)
	assert.Equal(t, 3, scenarios[3].Settings.GroupCount)
	assert.Equal(t, 0, scenarios[4].Settings.GroupCount)
	assert.Equal(t, 8, scenarios[4].Settings.UnitSize)
}

func TestCompareScenarios(t *testing.T) {
	items := []model.Item{
		model.NewItem("A", 50, 10, 1),
		model.NewItem("B", 60, 10, 1),
		model.NewItem("C", 50, 10, 2),
	}
	s := model.DefaultSettings()
	s.UnitSize = 4
	scenarios := BuildDefaultScenarios(s)

	results := CompareScenarios(scenarios, items, model.Container{Width: 100, Height: 100})

	require.Len(t, results, len(scenarios))
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		assert.Len(t, r.Result.Placements, 4)
		assert.Positive(t, r.PrimaryExtent)
		assert.InDelta(t, 100.0, r.Efficiency+r.WastePercent, 1e-9)
	}
	assert.Equal(t, 1, results[3].Result.Settings.UnitSize)
}
