package engine

import (
	"fmt"

	"github.com/piwi3910/staggergrid/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string         `json:"name"`
	Settings model.Settings `json:"settings"`
}

// ComparisonResult holds the layout and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario `json:"scenario"`
	Result        model.LayoutResult `json:"result"`
	PrimaryExtent int                `json:"primary_extent"`
	Efficiency    float64            `json:"efficiency"`
	WastePercent  float64            `json:"waste_percent"`
}

// CompareScenarios arranges the same items under each scenario and returns
// the results in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, items []model.Item, c model.Container) []ComparisonResult {
	expanded := model.ExpandItems(items)
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := Arrange(expanded, c, scenario.Settings, nil)
		eff := result.Efficiency()

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PrimaryExtent: result.PrimaryExtent(),
			Efficiency:    eff,
			WastePercent:  100.0 - eff,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives to the current settings.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	base = base.Normalized()
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	fill := base
	fill.Fullable = !base.Fullable
	name := "Fill Leading Gaps"
	if base.Fullable {
		name = "Skip Leading Gaps"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: fill})

	flipped := base
	flipped.Orientation = model.Vertical
	if base.Orientation == model.Vertical {
		flipped.Orientation = model.Horizontal
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("%s Orientation", flipped.Orientation),
		Settings: flipped,
	})

	if base.UnitSize > 1 {
		fine := base
		fine.UnitSize = 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Unit 1 (was %d)", base.UnitSize),
			Settings: fine,
		})
	}

	if base.GroupCount > 0 {
		free := base
		free.GroupCount = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Column Groups",
			Settings: free,
		})
	}

	return scenarios
}
