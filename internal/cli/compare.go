package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/piwi3910/staggergrid/internal/engine"
)

func (c *CLI) compareCommand() *cobra.Command {
	var (
		flags  layoutFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compare [input]",
		Short: "Compare the layout under what-if settings",
		Long: `Arrange the same items under the current settings and a set of alternatives
(toggled leading-gap filling, the other orientation, unit size 1, no column
groups) and print the resulting extent and efficiency of each.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.prepare(cmd, args[0])
			if err != nil {
				return err
			}
			results := engine.CompareScenarios(engine.BuildDefaultScenarios(in.Settings), in.Items, in.Container)
			if asJSON {
				return writeJSONTo(c.Out, results)
			}
			c.printComparison(results)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func (c *CLI) printComparison(results []engine.ComparisonResult) {
	nameCol := lipgloss.NewStyle().Width(26)
	numCol := lipgloss.NewStyle().Width(12).Align(lipgloss.Right)

	printTitle(c.Out, nameCol.Render("Scenario")+numCol.Render("Extent")+numCol.Render("Efficiency")+numCol.Render("Waste"))

	best := 0
	for i, r := range results {
		if r.PrimaryExtent < results[best].PrimaryExtent {
			best = i
		}
	}

	for i, r := range results {
		name := r.Scenario.Name
		if i == best {
			name += " *"
		}
		fmt.Fprintln(c.Out,
			nameCol.Render(name)+
				numCol.Inherit(styleNumber).Render(fmt.Sprintf("%d", r.PrimaryExtent))+
				numCol.Render(fmt.Sprintf("%.1f%%", r.Efficiency))+
				numCol.Inherit(styleDim).Render(fmt.Sprintf("%.1f%%", r.WastePercent)))
	}
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
