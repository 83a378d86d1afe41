package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"
)

const (
	AppIcon = "stortrooper.png"
)

// LoadLogoResource loads the application icon from the resource directory
func LoadLogoResource(resourceDir string) (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(filepath.Join(resourceDir, AppIcon))
}
