package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestResourceDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test setting custom value
	customDir := "/custom/res"
	settings.SetResourceDirectory(customDir)

	retrievedDir := settings.GetResourceDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected resource directory %s, got %s", customDir, retrievedDir)
	}
}

func TestExportDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetExportDirectory()
	if filepath.Base(dir) != "Pictures" {
		t.Errorf("Expected default export directory under Pictures, got %s", dir)
	}

	settings.SetExportDirectory("/custom/export")
	if settings.GetExportDirectory() != "/custom/export" {
		t.Errorf("Expected export directory /custom/export, got %s", settings.GetExportDirectory())
	}
}

func TestLastCharacter(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	name, file := settings.GetLastCharacter()
	if name != "" || file != "" {
		t.Errorf("Expected no last character, got %s/%s", name, file)
	}

	settings.SetLastCharacter("boy", "articles.txt")
	name, file = settings.GetLastCharacter()
	if name != "boy" || file != "articles.txt" {
		t.Errorf("Expected boy/articles.txt, got %s/%s", name, file)
	}
}

func TestZoom(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if zoom := settings.GetZoom(); zoom != DefaultZoom {
		t.Errorf("Expected default zoom %d, got %d", DefaultZoom, zoom)
	}

	settings.SetZoom(8)
	if zoom := settings.GetZoom(); zoom != 8 {
		t.Errorf("Expected zoom 8, got %d", zoom)
	}

	// Test boundary values
	settings.SetZoom(0) // Should be clamped to 1
	if settings.GetZoom() != MinZoom {
		t.Error("Zoom should be clamped to minimum 1")
	}

	settings.SetZoom(40) // Should be clamped to 16
	if settings.GetZoom() != MaxZoom {
		t.Error("Zoom should be clamped to maximum 16")
	}
}

func TestAutoRevealOnExport(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoRevealOnExport() != DefaultAutoRevealExport {
		t.Errorf("Expected default auto reveal %v", DefaultAutoRevealExport)
	}
	settings.SetAutoRevealOnExport(true)
	if !settings.GetAutoRevealOnExport() {
		t.Error("Expected auto reveal to be enabled")
	}
}

func TestMaxRecentFiles(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if value := settings.GetMaxRecentFiles(); value != DefaultMaxRecent {
		t.Errorf("Expected default max recent %d, got %d", DefaultMaxRecent, value)
	}

	settings.SetMaxRecentFiles(100) // Should be clamped to 30
	if settings.GetMaxRecentFiles() != MaxMaxRecent {
		t.Error("Max recent should be clamped to maximum 30")
	}
}

func TestGetZoomOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetZoomOptions()
	if len(options) == 0 {
		t.Fatal("Expected zoom options")
	}
	for i, zoom := range options {
		if zoom < MinZoom || zoom > MaxZoom {
			t.Errorf("Zoom option %d out of range: %d", i, zoom)
		}
		if i > 0 && options[i-1] >= zoom {
			t.Errorf("Zoom options should be ascending: %v", options)
		}
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetLanguage() != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, settings.GetLanguage())
	}

	settings.SetLanguage("es")
	if settings.GetLanguage() != "es" {
		t.Errorf("Expected language es, got %s", settings.GetLanguage())
	}

	if _, ok := settings.GetLanguageOptions()[DefaultLanguage]; !ok {
		t.Error("Language options should include the default language")
	}
}
