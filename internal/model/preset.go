package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable combination of layout settings and container size.
type Preset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Settings    Settings  `json:"settings"`
	Container   Container `json:"container"`
}

// NewPreset captures the settings and container of a project.
func NewPreset(name, description string, s Settings, c Container) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Settings:    s.Normalized(),
		Container:   c,
	}
}

// ApplyTo copies the preset settings and container into p, leaving its items alone.
func (ps Preset) ApplyTo(p *Project) {
	p.Settings = ps.Settings.Normalized()
	if ps.Container.Width > 0 && ps.Container.Height > 0 {
		p.Container = ps.Container
	}
	p.Result = nil
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

func NewPresetStore() PresetStore {
	return PresetStore{Presets: []Preset{}}
}

// Add appends a preset, replacing any existing preset with the same name.
func (ps *PresetStore) Add(p Preset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name {
			p.ID = ps.Presets[i].ID
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
