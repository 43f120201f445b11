package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/staggergrid/internal/model"
)

// FileExtension is the extension used for saved projects.
const FileExtension = ".sgrid"

// Save writes a project as JSON.
func Save(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load reads a project written by Save. Missing settings fields fall back to
// the defaults and the container falls back to the default size.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("load project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project %s: %w", path, err)
	}
	p.Settings = p.Settings.Normalized()
	if p.Items == nil {
		p.Items = []model.Item{}
	}
	return p, nil
}
