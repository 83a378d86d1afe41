package config

import (
	"fyne.io/fyne/v2"

	"github.com/retromoe/stortrooper-editor/internal/history"
	"github.com/retromoe/stortrooper-editor/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyResourceDir      = "resource_directory"
	KeyExportDir        = "export_directory"
	KeyLastCharacter    = "last_character"
	KeyLastArticles     = "last_articles_file"
	KeyZoom             = "preview_zoom"
	KeyAutoRevealExport = "auto_reveal_on_export"
	KeyMaxRecent        = "max_recent_files"
	KeyLanguage         = "language"
)

// Default values
const (
	DefaultZoom             = 4
	DefaultAutoRevealExport = false
	DefaultMaxRecent        = history.DefaultMaxRecent
	DefaultLanguage         = "en"
)

// Limits
const (
	MinZoom      = 1
	MaxZoom      = 16
	MinMaxRecent = 1
	MaxMaxRecent = 30
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// Preferences returns the underlying preference store
func (s *Settings) Preferences() fyne.Preferences {
	return s.app.Preferences()
}

// GetResourceDirectory returns the configured resource directory, or the
// first one found next to the working directory or the executable
func (s *Settings) GetResourceDirectory() string {
	dir := s.app.Preferences().String(KeyResourceDir)
	if dir != "" {
		return dir
	}
	found, err := platform.FindResourceDir("")
	if err != nil {
		return ""
	}
	return found
}

// SetResourceDirectory sets the resource directory
func (s *Settings) SetResourceDirectory(dir string) {
	s.app.Preferences().SetString(KeyResourceDir, dir)
}

// GetExportDirectory returns the directory offered by the export dialog
func (s *Settings) GetExportDirectory() string {
	dir := s.app.Preferences().String(KeyExportDir)
	if dir == "" {
		// Use system default Pictures directory
		defaultDir, err := platform.GetHomePicturesDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetExportDirectory sets the export directory
func (s *Settings) SetExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyExportDir, dir)
}

// GetLastCharacter returns the character type and articles file used last
func (s *Settings) GetLastCharacter() (name, articlesFile string) {
	prefs := s.app.Preferences()
	return prefs.String(KeyLastCharacter), prefs.String(KeyLastArticles)
}

// SetLastCharacter remembers the character type used last
func (s *Settings) SetLastCharacter(name, articlesFile string) {
	prefs := s.app.Preferences()
	prefs.SetString(KeyLastCharacter, name)
	prefs.SetString(KeyLastArticles, articlesFile)
}

// GetZoom returns the preview scale factor
func (s *Settings) GetZoom() int {
	value := s.app.Preferences().Int(KeyZoom)
	if value <= 0 {
		s.SetZoom(DefaultZoom)
		return DefaultZoom
	}
	return value
}

// SetZoom sets the preview scale factor
func (s *Settings) SetZoom(zoom int) {
	s.app.Preferences().SetInt(KeyZoom, clamp(zoom, MinZoom, MaxZoom))
}

// GetAutoRevealOnExport returns whether to reveal exported images in the file manager
func (s *Settings) GetAutoRevealOnExport() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealExport, DefaultAutoRevealExport)
}

// SetAutoRevealOnExport sets whether to reveal exported images
func (s *Settings) SetAutoRevealOnExport(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealExport, autoReveal)
}

// GetMaxRecentFiles returns the length of the recent files menu
func (s *Settings) GetMaxRecentFiles() int {
	value := s.app.Preferences().Int(KeyMaxRecent)
	if value <= 0 {
		s.SetMaxRecentFiles(DefaultMaxRecent)
		return DefaultMaxRecent
	}
	return value
}

// SetMaxRecentFiles sets the length of the recent files menu
func (s *Settings) SetMaxRecentFiles(count int) {
	s.app.Preferences().SetInt(KeyMaxRecent, clamp(count, MinMaxRecent, MaxMaxRecent))
}

// GetLanguage returns the interface language code
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the interface language code
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available interface languages
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"en": "English",
		"es": "Español",
	}
}

// GetZoomOptions returns the zoom levels offered in the UI
func (s *Settings) GetZoomOptions() []int {
	return []int{1, 2, 3, 4, 6, 8, 12, 16}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
