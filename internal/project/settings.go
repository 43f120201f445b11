package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/staggergrid/internal/model"
)

// settingsFile is the TOML layout of a settings file. The container is
// optional so a file can carry only packing options.
type settingsFile struct {
	model.Settings
	Container *model.Container `toml:"container,omitempty"`
}

// LoadSettingsTOML reads settings from a TOML file. Keys absent from the file
// keep their DefaultSettings values. The container is zero when the file has
// no [container] table.
func LoadSettingsTOML(path string) (model.Settings, model.Container, error) {
	f := settingsFile{Settings: model.DefaultSettings()}
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return model.Settings{}, model.Container{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return model.Settings{}, model.Container{}, fmt.Errorf("read settings %s: unknown key %q", path, undecoded[0].String())
	}
	var c model.Container
	if f.Container != nil {
		c = *f.Container
	}
	return f.Settings.Normalized(), c, nil
}

// SaveSettingsTOML writes settings, and the container when it has a size, to a TOML file.
func SaveSettingsTOML(path string, s model.Settings, c model.Container) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	defer out.Close()

	f := settingsFile{Settings: s.Normalized()}
	if c.Width > 0 || c.Height > 0 {
		f.Container = &c
	}
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}
