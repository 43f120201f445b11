package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/staggergrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	content := `
orientation = "horizontal"
unit_size = 8
group_count = 4
rtl = true

[gravity]
horizontal = "center"
vertical = "bottom"

[padding]
left = 10
top = 5

[container]
width = 640
height = 480
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, c, err := LoadSettingsTOML(path)
	require.NoError(t, err)

	assert.Equal(t, model.Horizontal, s.Orientation)
	assert.True(t, s.Fullable, "absent keys keep defaults")
	assert.Equal(t, 8, s.UnitSize)
	assert.Equal(t, 4, s.GroupCount)
	assert.True(t, s.RTL)
	assert.Equal(t, model.Gravity{Horizontal: model.AlignCenter, Vertical: model.AlignEnd}, s.Gravity)
	assert.Equal(t, model.Insets{Left: 10, Top: 5}, s.Padding)
	assert.Equal(t, model.Container{Width: 640, Height: 480}, c)
}

func TestLoadSettingsTOML_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	require.NoError(t, os.WriteFile(path, []byte("unit_size = 0\ngroup_count = -2\nfullable = false\n"), 0644))

	s, c, err := LoadSettingsTOML(path)
	require.NoError(t, err)

	assert.Equal(t, 1, s.UnitSize)
	assert.Equal(t, 0, s.GroupCount)
	assert.False(t, s.Fullable)
	assert.Equal(t, model.Container{}, c)
}

func TestLoadSettingsTOML_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadSettingsTOML(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("kerf = 3\n"), 0644))
	_, _, err = LoadSettingsTOML(unknown)
	assert.ErrorContains(t, err, "kerf")

	badValue := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badValue, []byte(`orientation = "diagonal"`+"\n"), 0644))
	_, _, err = LoadSettingsTOML(badValue)
	assert.Error(t, err)
}

func TestSaveSettingsTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "layout.toml")

	s := model.DefaultSettings()
	s.Orientation = model.Horizontal
	s.Fullable = false
	s.UnitSize = 6
	s.Gravity.Vertical = model.AlignCenter
	s.Padding = model.Insets{Left: 1, Top: 2, Right: 3, Bottom: 4}
	c := model.Container{Width: 320, Height: 200}

	require.NoError(t, SaveSettingsTOML(path, s, c))

	gotS, gotC, err := LoadSettingsTOML(path)
	require.NoError(t, err)
	assert.Equal(t, s, gotS)
	assert.Equal(t, c, gotC)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `orientation = "horizontal"`)
}
