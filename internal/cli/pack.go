package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/export"
	"github.com/piwi3910/staggergrid/internal/model"
)

// tagsSuffix selects the QR tag sheet writer for --output.
const tagsSuffix = ".tags.pdf"

func (c *CLI) packCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "pack [input]",
		Short: "Arrange items and write the layout",
		Long: `Arrange the items of a project (.sgrid/.json), CSV, XLSX or DXF file.

The layout is written as JSON to stdout unless --output is given, in which case
the extension picks the format: .json, .pdf, .xlsx, or ` + tagsSuffix + ` for a
sheet of QR-coded tile tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.prepare(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runPack(cmd, in, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: JSON to stdout)")
	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, in layoutInput, output string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	items := model.ExpandItems(in.Items)
	result := engine.Arrange(items, in.Container, in.Settings, packObserver(logger))
	prog.done(fmt.Sprintf("Packed %d tiles into %dx%d", len(items), result.Width, result.Height))

	if output == "" {
		return export.WriteJSON(c.Out, result)
	}
	if err := writeResult(output, result); err != nil {
		return err
	}

	printSuccess(c.Out, "Layout written")
	printFile(c.Out, output)
	printKeyValue(c.Out, "Size", fmt.Sprintf("%d x %d", result.Width, result.Height))
	printKeyValue(c.Out, "Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()))
	return nil
}

// writeResult writes result in the format selected by the extension of path.
func writeResult(path string, result model.LayoutResult) error {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, tagsSuffix):
		return export.ExportTags(path, result)
	case filepath.Ext(lower) == ".pdf":
		return export.ExportPDF(path, result)
	case filepath.Ext(lower) == ".xlsx":
		return export.ExportXLSX(path, result)
	case filepath.Ext(lower) == ".json":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		if err := export.WriteJSON(f, result); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}
