package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultSettings  Settings  `json:"default_settings"`
	DefaultContainer Container `json:"default_container"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultSettings:  DefaultSettings(),
		DefaultContainer: NewProject().Container,
		RecentProjects:   []string{},
		Theme:            "system",
	}
}

// ApplyToProject copies the default values from AppConfig into a project.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToProject(p *Project) {
	p.Settings = c.DefaultSettings.Normalized()
	if c.DefaultContainer.Width > 0 && c.DefaultContainer.Height > 0 {
		p.Container = c.DefaultContainer
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
