package model

import "path/filepath"

// UntitledProject is the display name of a project that was never saved
const UntitledProject = "Untitled"

// Project pairs a character type with a selection snapshot
type Project struct {
	ID        string
	Type      CharacterType
	Selection Selection
	Path      string // file the project was last saved to or loaded from
}

// GetDisplayTitle returns the file name or UntitledProject
func (p *Project) GetDisplayTitle() string {
	if p.Path == "" {
		return UntitledProject
	}
	return filepath.Base(p.Path)
}
