package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
)

func (c *CLI) orderCommand() *cobra.Command {
	var (
		flags       layoutFlags
		seed        int64
		generations int
		population  int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "order [input]",
		Short: "Search for an item order that packs shorter",
		Long: `Run a genetic search over item orderings and print the order that packs into
the smallest extent along the growing axis. With --output the reordered items
are saved as a project file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.prepare(cmd, args[0])
			if err != nil {
				return err
			}

			items := model.ExpandItems(in.Items)
			cfg := engine.ScaledGeneticConfig(len(items))
			if cmd.Flags().Changed("generations") {
				cfg.Generations = generations
			}
			if cmd.Flags().Changed("population") {
				cfg.PopulationSize = population
			}
			return c.runOrder(cmd, in, items, cfg, seed, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&generations, "generations", 100, "generations (default scales with item count)")
	cmd.Flags().IntVar(&population, "population", 50, "population size (default scales with item count)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the reordered items as a project file")
	return cmd
}

func (c *CLI) runOrder(cmd *cobra.Command, in layoutInput, items []model.Item, cfg engine.GeneticConfig, seed int64, output string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	baseline := engine.Arrange(items, in.Container, in.Settings, nil)
	best := engine.OptimizeOrder(items, in.Container, in.Settings, cfg, seed)
	prog.done(fmt.Sprintf("Searched %d generations", cfg.Generations))

	printKeyValue(c.Out, "Input order", fmt.Sprintf("%d", baseline.PrimaryExtent()))
	printKeyValue(c.Out, "Best order", fmt.Sprintf("%d", best.Result.PrimaryExtent()))
	for i, it := range best.Items {
		fmt.Fprintf(c.Out, "%s %s\n", styleDim.Render(fmt.Sprintf("%3d.", i+1)), itemName(it, best.Order[i]))
	}

	if output == "" {
		return nil
	}
	p := model.NewProject()
	p.Items = best.Items
	p.Settings = in.Settings
	p.Container = in.Container
	p.Result = &best.Result
	if err := project.Save(output, p); err != nil {
		return err
	}
	printSuccess(c.Out, "Reordered project saved")
	printFile(c.Out, output)
	return nil
}

// itemName returns the item label, or its input position when unlabelled.
func itemName(it model.Item, index int) string {
	if it.Label != "" {
		return fmt.Sprintf("%s (%dx%d)", it.Label, it.Width, it.Height)
	}
	return fmt.Sprintf("#%d (%dx%d)", index+1, it.Width, it.Height)
}
