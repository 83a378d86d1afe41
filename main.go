package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2/app"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/config"
	"github.com/retromoe/stortrooper-editor/internal/editor"
	"github.com/retromoe/stortrooper-editor/internal/history"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/project"
	"github.com/retromoe/stortrooper-editor/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.retromoe.stortrooper"
	AppName = "StorTrooper"
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	env, err := config.LoadEnv()
	if err != nil {
		log.Printf("Ignoring environment configuration: %v", err)
	}

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)
	resourceDir := settings.GetResourceDirectory()
	if env.ResourceDir != "" {
		resourceDir = env.ResourceDir
	}
	log.Printf("Using resources from %q", resourceDir)

	// Recent files live in the preferences unless a history database is configured
	var recents history.Recents = history.NewPreferences(myApp.Preferences(), settings.GetMaxRecentFiles)
	if env.HistoryDB != "" {
		db, err := history.OpenSQLite(env.HistoryDB, settings.GetMaxRecentFiles())
		if err != nil {
			log.Printf("Failed to open history database %s: %v", env.HistoryDB, err)
		} else {
			defer db.Close()
			recents = db
		}
	}

	store := project.NewStore(catalog.NewLibrary(resourceDir), recents)
	workspace := editor.NewWorkspace(store, compose.NewRenderer())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	if icon, err := ui.LoadLogoResource(resourceDir); err == nil {
		myWindow.SetIcon(icon)
	}

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, workspace, settings)

	name, file := settings.GetLastCharacter()
	docs, err := workspace.RestoreSession(model.CharacterType{Name: name, ArticlesFile: file})
	if err != nil {
		log.Printf("No document to show: %v", err)
	}
	root.ShowDocuments(docs)

	// Show and run
	myWindow.ShowAndRun()
}
