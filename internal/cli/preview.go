package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
)

// emptyCell marks grid cells not covered by any frame.
const emptyCell = -1

// tilePalette cycles through the same hues as the PDF export.
var tilePalette = []lipgloss.Color{"71", "33", "208", "127", "37", "203", "227", "94"}

func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags layoutFlags
		cols  int
	)

	cmd := &cobra.Command{
		Use:   "preview [input]",
		Short: "Draw the layout in the terminal",
		Long: `Arrange the items and draw the frames as coloured blocks scaled to --cols
terminal columns. Each tile is marked with a letter in placement order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.prepare(cmd, args[0])
			if err != nil {
				return err
			}
			result := engine.Arrange(model.ExpandItems(in.Items), in.Container, in.Settings, nil)
			fmt.Fprint(c.Out, renderPreview(result, cols))
			printKeyValue(c.Out, "Size", fmt.Sprintf("%d x %d", result.Width, result.Height))
			printKeyValue(c.Out, "Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&cols, "cols", 80, "preview width in terminal columns")
	return cmd
}

// previewGrid maps the layout onto a character grid of the given width.
// Each cell holds the index of the placement whose frame covers it, or
// emptyCell. Rows are scaled by half because terminal cells are about twice
// as tall as they are wide. Every frame covers at least one cell.
func previewGrid(result model.LayoutResult, cols int) [][]int {
	if cols < 1 || result.Width <= 0 || result.Height <= 0 {
		return nil
	}
	scale := float64(cols) / float64(result.Width)
	rows := int(math.Ceil(float64(result.Height) * scale / 2))
	if rows < 1 {
		rows = 1
	}

	grid := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]int, cols)
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}

	for i, p := range result.Placements {
		if p.Frame.Empty() {
			continue
		}
		x0, x1 := scaleSpan(p.Frame.Left, p.Frame.Right, scale, cols)
		y0, y1 := scaleSpan(p.Frame.Top, p.Frame.Bottom, scale/2, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = i
			}
		}
	}
	return grid
}

// scaleSpan scales [lo, hi) and keeps at least one cell inside [0, limit).
func scaleSpan(lo, hi int, scale float64, limit int) (int, int) {
	start := int(math.Floor(float64(lo) * scale))
	end := int(math.Ceil(float64(hi) * scale))
	if start < 0 {
		start = 0
	}
	if start >= limit {
		start = limit - 1
	}
	if end > limit {
		end = limit
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

// tileRune is the letter drawn for placement i.
func tileRune(i int) rune {
	return rune('A' + i%26)
}

func renderPreview(result model.LayoutResult, cols int) string {
	grid := previewGrid(result, cols)
	if grid == nil {
		return styleDim.Render("(empty layout)") + "\n"
	}

	empty := styleDim.Render("·")
	var b strings.Builder
	for _, row := range grid {
		for _, owner := range row {
			if owner == emptyCell {
				b.WriteString(empty)
				continue
			}
			style := lipgloss.NewStyle().Foreground(tilePalette[owner%len(tilePalette)])
			b.WriteString(style.Render(string(tileRune(owner))))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
