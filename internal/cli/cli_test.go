package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/staggergrid/internal/engine"
	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/piwi3910/staggergrid/internal/project"
)

const itemsCSV = "label,width,height,quantity\nA,100,20,1\nB,40,10,2\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(&out, io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPack_CSVToStdout(t *testing.T) {
	input := writeFile(t, "items.csv", itemsCSV)

	out, err := run(t, "pack", input, "--width", "100")
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	var result model.LayoutResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not a layout: %v\n%s", err, out)
	}
	if len(result.Placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(result.Placements))
	}
	if result.Width != 100 || result.Height != 30 {
		t.Errorf("expected 100x30, got %dx%d", result.Width, result.Height)
	}
	if got := result.Placements[2].Cell; got != (model.Rect{Left: 40, Top: 20, Right: 80, Bottom: 30}) {
		t.Errorf("unexpected third cell %+v", got)
	}
}

func TestPack_FlagsOverrideSettingsFile(t *testing.T) {
	input := writeFile(t, "items.csv", itemsCSV)
	settings := writeFile(t, "layout.toml", "unit_size = 25\n\n[container]\nwidth = 100\nheight = 400\n")

	out, err := run(t, "pack", input, "--settings", settings, "--unit", "8")
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	var result model.LayoutResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatal(err)
	}
	if result.Settings.UnitSize != 8 {
		t.Errorf("expected flag to win with unit 8, got %d", result.Settings.UnitSize)
	}
	if result.Container.Width != 100 {
		t.Errorf("expected container from settings file, got %+v", result.Container)
	}
	// A snaps to 24 and the B row to 40.
	if result.Height != 40 {
		t.Errorf("expected height 40, got %d", result.Height)
	}
}

func TestPack_WritesFiles(t *testing.T) {
	input := writeFile(t, "items.csv", itemsCSV)
	dir := t.TempDir()

	for _, name := range []string{"out.json", "out.pdf", "out.xlsx", "out.tags.pdf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			out, err := run(t, "pack", input, "--width", "100", "-o", path)
			if err != nil {
				t.Fatalf("pack failed: %v", err)
			}
			if info, err := os.Stat(path); err != nil || info.Size() == 0 {
				t.Fatalf("expected %s to be written", name)
			}
			if !strings.Contains(out, path) {
				t.Errorf("expected output path in %q", out)
			}
		})
	}
}

func TestPack_Errors(t *testing.T) {
	input := writeFile(t, "items.csv", itemsCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unsupported input", []string{"pack", writeFile(t, "items.yaml", "")}, "unsupported input"},
		{"unsupported output", []string{"pack", input, "-o", filepath.Join(t.TempDir(), "out.svg")}, "unsupported output"},
		{"bad orientation", []string{"pack", input, "--orientation", "diagonal"}, "diagonal"},
		{"missing file", []string{"pack", filepath.Join(t.TempDir(), "none.sgrid")}, "load project"},
		{"no args", []string{"pack"}, "arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadInput_Project(t *testing.T) {
	p := model.NewProject()
	p.Items = []model.Item{model.NewItem("X", 5, 5, 1)}
	p.Settings.Orientation = model.Horizontal
	p.Container = model.Container{Width: 50, Height: 60}
	path := filepath.Join(t.TempDir(), "p"+project.FileExtension)
	if err := project.Save(path, p); err != nil {
		t.Fatal(err)
	}

	in, err := loadInput(path)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	if len(in.Items) != 1 || in.Settings.Orientation != model.Horizontal || in.Container.Height != 60 {
		t.Errorf("project not loaded: %+v", in)
	}
}

func TestLoadInput_CSVWithBadRows(t *testing.T) {
	path := writeFile(t, "items.csv", "label,width,height\nA,10,10\nB,abc,10\n")

	in, err := loadInput(path)
	if err != nil {
		t.Fatalf("loadInput failed: %v", err)
	}
	if len(in.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(in.Items))
	}
	if len(in.Warnings) != 2 || !strings.Contains(in.Warnings[1], "Line 3") {
		t.Errorf("expected header notice and the bad row as warnings, got %v", in.Warnings)
	}

	if _, err := loadInput(writeFile(t, "bad.csv", "label,width,height\nB,abc,10\n")); err == nil {
		t.Error("expected error when no row imports")
	}
}

func TestCompare(t *testing.T) {
	input := writeFile(t, "items.csv", itemsCSV)

	out, err := run(t, "compare", input, "--width", "100", "--unit", "4")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"Scenario", "Current Settings", "Skip Leading Gaps", "Horizontal Orientation", "Unit 1 (was 4)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "compare", input, "--width", "100", "--json")
	if err != nil {
		t.Fatalf("compare --json failed: %v", err)
	}
	var results []engine.ComparisonResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 scenarios, got %d", len(results))
	}
}

func TestOrder(t *testing.T) {
	input := writeFile(t, "items.csv", "label,width,height\nX,50,10\nY,60,10\nZ,50,10\n")
	output := filepath.Join(t.TempDir(), "best.sgrid")

	out, err := run(t, "order", input, "--width", "100", "--fullable=false", "--seed", "3", "-o", output)
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}
	if !strings.Contains(out, "Input order") || !strings.Contains(out, "Best order") {
		t.Errorf("unexpected output:\n%s", out)
	}

	p, err := project.Load(output)
	if err != nil {
		t.Fatalf("saved project not readable: %v", err)
	}
	if len(p.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(p.Items))
	}
	if p.Result == nil || p.Result.Height != 20 {
		t.Errorf("expected best height 20, got %+v", p.Result)
	}
}

func TestPreviewCommand(t *testing.T) {
	input := writeFile(t, "items.csv", itemsCSV)

	out, err := run(t, "preview", input, "--width", "100", "--cols", "20")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	for _, want := range []string{"A", "B", "C", "100 x 30"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in preview:\n%s", want, out)
		}
	}
}
