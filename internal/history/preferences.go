package history

import (
	"fyne.io/fyne/v2"
)

// Preference keys
const (
	RecentFilesKey  = "recent_files"
	SessionFilesKey = "last_session_files"
)

// Preferences keeps the lists in fyne application preferences
type Preferences struct {
	prefs     fyne.Preferences
	maxRecent func() int
}

// NewPreferences creates a preference-backed history. maxRecent is read on
// every AddRecent so a changed setting applies immediately.
func NewPreferences(prefs fyne.Preferences, maxRecent func() int) *Preferences {
	if maxRecent == nil {
		maxRecent = func() int { return DefaultMaxRecent }
	}
	return &Preferences{prefs: prefs, maxRecent: maxRecent}
}

// RecentFiles returns paths most-recent-first
func (p *Preferences) RecentFiles() []string {
	return p.prefs.StringList(RecentFilesKey)
}

// AddRecent moves path to the front of the list
func (p *Preferences) AddRecent(path string) error {
	p.prefs.SetStringList(RecentFilesKey, Push(p.RecentFiles(), path, p.maxRecent()))
	return nil
}

// SessionFiles returns the paths open when the last session ended
func (p *Preferences) SessionFiles() []string {
	return p.prefs.StringList(SessionFilesKey)
}

// SetSessionFiles replaces the session list
func (p *Preferences) SetSessionFiles(paths []string) error {
	p.prefs.SetStringList(SessionFilesKey, dedupe(paths))
	return nil
}
