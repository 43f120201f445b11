package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/staggergrid/internal/importer"
	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
)

// layoutInput is everything a command needs to arrange items.
type layoutInput struct {
	Items     []model.Item
	Settings  model.Settings
	Container model.Container
	Warnings  []string
}

// loadInput reads items from a project, CSV, XLSX or DXF file. Projects also
// supply settings and container; other formats start from the defaults.
func loadInput(path string) (layoutInput, error) {
	defaults := model.NewProject()
	in := layoutInput{Settings: defaults.Settings, Container: defaults.Container}

	var res importer.ImportResult
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case project.FileExtension, ".json":
		p, err := project.Load(path)
		if err != nil {
			return layoutInput{}, err
		}
		in.Items, in.Settings, in.Container = p.Items, p.Settings, p.Container
		return in, nil
	case ".csv", ".tsv", ".txt":
		res = importer.ImportCSV(path)
	case ".xlsx":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path)
	default:
		return layoutInput{}, fmt.Errorf("unsupported input format %q", ext)
	}

	if len(res.Items) == 0 && len(res.Errors) > 0 {
		return layoutInput{}, fmt.Errorf("import %s: %s", path, strings.Join(res.Errors, "; "))
	}
	in.Items = res.Items
	in.Warnings = append(res.Warnings, res.Errors...)
	return in, nil
}

// layoutFlags are the packing options shared by every layout command.
// Flags given on the command line override the settings file, which
// overrides what the input supplied.
type layoutFlags struct {
	settingsFile string
	width        int
	height       int
	orientation  string
	fullable     bool
	unit         int
	groups       int
	rtl          bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.settingsFile, "settings", "", "TOML settings file")
	fs.IntVar(&f.width, "width", 1080, "container width")
	fs.IntVar(&f.height, "height", 1920, "container height")
	fs.StringVar(&f.orientation, "orientation", "vertical", "growth axis: vertical, horizontal")
	fs.BoolVar(&f.fullable, "fullable", true, "keep leading gaps as free space")
	fs.IntVar(&f.unit, "unit", 1, "primary-axis snapping unit")
	fs.IntVar(&f.groups, "groups", 0, "cross-axis share count, 0 disables")
	fs.BoolVar(&f.rtl, "rtl", false, "right-to-left start/end alignment")
}

func (f *layoutFlags) apply(cmd *cobra.Command, in *layoutInput) error {
	if f.settingsFile != "" {
		s, c, err := project.LoadSettingsTOML(f.settingsFile)
		if err != nil {
			return err
		}
		in.Settings = s
		if c.Width > 0 && c.Height > 0 {
			in.Container = c
		}
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		in.Container.Width = f.width
	}
	if changed("height") {
		in.Container.Height = f.height
	}
	if changed("orientation") {
		o, ok := model.ParseOrientation(f.orientation)
		if !ok {
			return fmt.Errorf("unknown orientation %q", f.orientation)
		}
		in.Settings.Orientation = o
	}
	if changed("fullable") {
		in.Settings.Fullable = f.fullable
	}
	if changed("unit") {
		in.Settings.UnitSize = f.unit
	}
	if changed("groups") {
		in.Settings.GroupCount = f.groups
	}
	if changed("rtl") {
		in.Settings.RTL = f.rtl
	}
	in.Settings = in.Settings.Normalized()
	return nil
}

// prepare loads the input named by args[0] and applies the layout flags.
func (f *layoutFlags) prepare(cmd *cobra.Command, path string) (layoutInput, error) {
	in, err := loadInput(path)
	if err != nil {
		return layoutInput{}, err
	}
	if err := f.apply(cmd, &in); err != nil {
		return layoutInput{}, err
	}
	logger := loggerFromContext(cmd.Context())
	for _, w := range in.Warnings {
		logger.Warn(w)
	}
	logger.Debug("input loaded", "path", path, "items", len(in.Items),
		"container", fmt.Sprintf("%dx%d", in.Container.Width, in.Container.Height))
	return in, nil
}
