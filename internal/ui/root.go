package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/retromoe/stortrooper-editor/internal/config"
	"github.com/retromoe/stortrooper-editor/internal/editor"
	"github.com/retromoe/stortrooper-editor/internal/export"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/platform"
	"github.com/retromoe/stortrooper-editor/internal/project"
)

// Checkerboard drawn behind transparent preview pixels
const checkerCell = 8

var (
	checkerLight = color.NRGBA{R: 204, G: 204, B: 204, A: 255}
	checkerDark  = color.NRGBA{R: 153, G: 153, B: 153, A: 255}
)

// RootUI represents the main editor window
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	workspace    *editor.Workspace
	settings     *config.Settings
	localization *Localization

	// Active document; empty when no document is open
	activeID string
	tabs     map[string]*container.TabItem

	// syncing is set while selects are updated programmatically so their
	// change callbacks do not mutate the document
	syncing bool

	// Widgets
	docTabs         *container.DocTabs
	categoryPanel   *CategoryPanel
	preview         *canvas.Image
	previewStack    *fyne.Container
	characterSelect *widget.Select
	articlesSelect  *widget.Select
	zoomSelect      *widget.Select
	seedLabel       *widget.Label
	characterLabel  *widget.Label
	articlesLabel   *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, ws *editor.Workspace, settings *config.Settings) *RootUI {
	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		workspace:    ws,
		settings:     settings,
		localization: localization,
		tabs:         make(map[string]*container.TabItem),
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for document updates
	ui.workspace.SetUpdateCallback(ui.onDocumentUpdate)

	ui.setupUI()
	window.SetCloseIntercept(ui.onQuit)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()
	ui.registerShortcuts()

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), ui.onNew),
		widget.NewToolbarAction(theme.FolderOpenIcon(), ui.onOpen),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), ui.onSave),
		widget.NewToolbarAction(theme.DownloadIcon(), ui.onExport),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), ui.onRandomize),
		widget.NewToolbarAction(theme.MediaReplayIcon(), ui.onRandomizeAll),
		widget.NewToolbarAction(theme.ContentClearIcon(), ui.onClearCategory),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), ui.onShowSettings),
	)

	// Character type and articles file pickers
	ui.characterLabel = widget.NewLabel(ui.localization.GetText(KeyCharacter))
	ui.characterSelect = widget.NewSelect(nil, ui.onCharacterChanged)
	ui.articlesLabel = widget.NewLabel(ui.localization.GetText(KeyArticles))
	ui.articlesSelect = widget.NewSelect(nil, ui.onArticlesChanged)
	ui.loadCharacterOptions()

	zoomOptions := []string{}
	for _, z := range ui.settings.GetZoomOptions() {
		zoomOptions = append(zoomOptions, fmt.Sprintf(ZoomLabelFormat, z))
	}
	ui.zoomSelect = widget.NewSelect(zoomOptions, ui.onZoomChanged)
	ui.zoomSelect.SetSelected(fmt.Sprintf(ZoomLabelFormat, ui.settings.GetZoom()))

	ui.seedLabel = widget.NewLabel("")

	pickers := container.NewHBox(
		ui.characterLabel, ui.characterSelect,
		ui.articlesLabel, ui.articlesSelect,
		widget.NewSeparator(),
		ui.zoomSelect,
		ui.seedLabel,
	)

	// Create notification panel under the pickers (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Document tabs act as the tab bar; the editor below shows the active one
	ui.docTabs = container.NewDocTabs()
	ui.docTabs.OnSelected = func(item *container.TabItem) {
		ui.activate(ui.documentForTab(item))
	}
	ui.docTabs.CloseIntercept = ui.onCloseTab

	ui.categoryPanel = NewCategoryPanel(ui.workspace.Renderer(), ui.localization)
	ui.categoryPanel.SetCallbacks(ui.isActive, ui.onToggleAsset, ui.onClearCategoryID)

	ui.preview = canvas.NewImageFromImage(nil)
	ui.preview.ScaleMode = canvas.ImageScalePixels
	ui.preview.FillMode = canvas.ImageFillContain
	checker := canvas.NewRasterWithPixels(checkerPixel)
	ui.previewStack = container.NewStack(checker, ui.preview)

	split := container.NewHSplit(ui.categoryPanel.Container(), container.NewScroll(container.NewCenter(ui.previewStack)))
	split.Offset = 0.3

	top := container.NewVBox(toolbar, pickers, ui.notificationContainer, ui.docTabs)
	content := container.NewBorder(top, nil, nil, nil, split)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// UI setup completed
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	text := ui.localization.GetText

	newItem := fyne.NewMenuItem(text(KeyNew), ui.onNew)
	newItem.Shortcut = shortcut(fyne.KeyN)
	openItem := fyne.NewMenuItem(text(KeyOpen), ui.onOpen)
	openItem.Shortcut = shortcut(fyne.KeyO)
	recentItem := fyne.NewMenuItem(text(KeyOpenRecent), nil)
	recentItem.ChildMenu = ui.createRecentMenu()
	saveItem := fyne.NewMenuItem(text(KeySave), ui.onSave)
	saveItem.Shortcut = shortcut(fyne.KeyS)
	saveAsItem := fyne.NewMenuItem(text(KeySaveAs), ui.onSaveAs)
	exportItem := fyne.NewMenuItem(text(KeyExport), ui.onExport)
	exportItem.Shortcut = shortcut(fyne.KeyE)
	closeItem := fyne.NewMenuItem(text(KeyClose), ui.onCloseActive)
	closeItem.Shortcut = shortcut(fyne.KeyW)
	settingsItem := fyne.NewMenuItem(text(KeySettings), ui.onShowSettings)

	randomItem := fyne.NewMenuItem(text(KeyRandomize), ui.onRandomize)
	randomItem.Shortcut = shortcut(fyne.KeyR)
	randomAllItem := fyne.NewMenuItem(text(KeyRandomizeAll), ui.onRandomizeAll)
	clearItem := fyne.NewMenuItem(text(KeyClearCategory), ui.onClearCategory)

	// Language submenu
	languageMenu := fyne.NewMenu(text(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(text(KeyFile),
			newItem, openItem, recentItem,
			fyne.NewMenuItemSeparator(),
			saveItem, saveAsItem, exportItem,
			fyne.NewMenuItemSeparator(),
			closeItem, settingsItem,
		),
		fyne.NewMenu(text(KeyEdit), randomItem, randomAllItem, clearItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// createRecentMenu lists recently used project files, newest first
func (ui *RootUI) createRecentMenu() *fyne.Menu {
	menu := fyne.NewMenu(ui.localization.GetText(KeyOpenRecent))
	for _, path := range ui.workspace.Store().RecentFiles() {
		recentPath := path // Capture for closure
		menu.Items = append(menu.Items, fyne.NewMenuItem(filepath.Base(path), func() {
			ui.openPath(recentPath)
		}))
	}
	if len(menu.Items) == 0 {
		empty := fyne.NewMenuItem(ui.localization.GetText(KeyNoRecentFiles), nil)
		empty.Disabled = true
		menu.Items = append(menu.Items, empty)
	}
	return menu
}

func (ui *RootUI) registerShortcuts() {
	bindings := map[fyne.KeyName]func(){
		fyne.KeyN: ui.onNew,
		fyne.KeyO: ui.onOpen,
		fyne.KeyS: ui.onSave,
		fyne.KeyE: ui.onExport,
		fyne.KeyW: ui.onCloseActive,
		fyne.KeyR: ui.onRandomize,
	}
	for key, action := range bindings {
		handler := action
		ui.window.Canvas().AddShortcut(shortcut(key), func(fyne.Shortcut) { handler() })
	}
}

func shortcut(key fyne.KeyName) *desktop.CustomShortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.characterLabel.SetText(ui.localization.GetText(KeyCharacter))
	ui.articlesLabel.SetText(ui.localization.GetText(KeyArticles))
	ui.categoryPanel.RefreshTexts()
}

// ShowDocuments adds tabs for docs and activates the first one
func (ui *RootUI) ShowDocuments(docs []*editor.Document) {
	for _, doc := range docs {
		ui.ensureTab(doc)
	}
	if len(docs) > 0 {
		ui.selectDocument(docs[0].ID())
	}
}

// ActiveDocument returns the document shown in the editor
func (ui *RootUI) ActiveDocument() (*editor.Document, bool) {
	if ui.activeID == "" {
		return nil, false
	}
	return ui.workspace.Document(ui.activeID)
}

// onDocumentUpdate handles updates from the workspace
func (ui *RootUI) onDocumentUpdate(doc *editor.Document) {
	fyne.Do(func() {
		ui.refreshDocument(doc)
	})
}

// refreshDocument brings the tab title and, for the active document, the
// editor widgets in line with doc
func (ui *RootUI) refreshDocument(doc *editor.Document) {
	if _, open := ui.workspace.Document(doc.ID()); !open {
		return
	}
	item := ui.ensureTab(doc)
	if item.Text != doc.Title() {
		item.Text = doc.Title()
		ui.docTabs.Refresh()
	}
	if doc.ID() == ui.activeID {
		ui.showActive(doc)
	}
}

// ensureTab returns the tab of doc, adding one if needed
func (ui *RootUI) ensureTab(doc *editor.Document) *container.TabItem {
	if item, ok := ui.tabs[doc.ID()]; ok {
		return item
	}
	item := container.NewTabItem(doc.Title(), widget.NewLabel(""))
	ui.tabs[doc.ID()] = item
	ui.docTabs.Append(item)
	return item
}

func (ui *RootUI) documentForTab(item *container.TabItem) string {
	for id, tab := range ui.tabs {
		if tab == item {
			return id
		}
	}
	return ""
}

// selectDocument switches the tab bar and editor to a document
func (ui *RootUI) selectDocument(id string) {
	if item, ok := ui.tabs[id]; ok {
		ui.docTabs.Select(item)
	}
	ui.activate(id)
}

// activate shows a document in the editor; an empty id clears the editor
func (ui *RootUI) activate(id string) {
	ui.activeID = id
	doc, ok := ui.workspace.Document(id)
	if !ok {
		ui.activeID = ""
		ui.categoryPanel.SetCatalog(nil)
		ui.preview.Image = nil
		ui.preview.Refresh()
		return
	}
	ui.showActive(doc)
}

// showActive refreshes pickers, category tabs and preview for doc
func (ui *RootUI) showActive(doc *editor.Document) {
	ui.syncCharacterSelects(doc.Project.Type)
	ui.categoryPanel.SetCatalog(doc.State.Catalog())
	ui.refreshPreview(doc)
}

// refreshPreview renders the document and scales the preview by the zoom setting
func (ui *RootUI) refreshPreview(doc *editor.Document) {
	img, err := ui.workspace.Render(doc.ID())
	if err != nil {
		log.Printf("Render of %s failed: %v", doc.ID(), err)
		ui.showNotification(err.Error(), false)
		ui.preview.Image = nil
		ui.preview.Refresh()
		return
	}
	ui.hideNotification()

	size := doc.State.Catalog().Canvas()
	zoom := float32(ui.settings.GetZoom())
	ui.previewStack.Objects[0].(*canvas.Raster).SetMinSize(fyne.NewSize(float32(size.X)*zoom, float32(size.Y)*zoom))
	ui.preview.SetMinSize(fyne.NewSize(float32(size.X)*zoom, float32(size.Y)*zoom))
	ui.preview.Image = img
	ui.preview.Refresh()
}

func checkerPixel(x, y, _, _ int) color.Color {
	if (x/checkerCell+y/checkerCell)%2 == 0 {
		return checkerLight
	}
	return checkerDark
}

// isActive reports whether an asset is selected in the active document
func (ui *RootUI) isActive(categoryID, assetID string) bool {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return false
	}
	return doc.State.IsActive(categoryID, assetID)
}

// loadCharacterOptions fills the character select from the resource directory
func (ui *RootUI) loadCharacterOptions() {
	names, err := ui.workspace.Library().CharacterTypes()
	if err != nil {
		log.Printf("Failed to list character types: %v", err)
	}
	ui.syncing = true
	ui.characterSelect.SetOptions(names)
	ui.syncing = false
}

// syncCharacterSelects shows ct in the pickers without triggering changes
func (ui *RootUI) syncCharacterSelects(ct model.CharacterType) {
	ui.syncing = true
	defer func() { ui.syncing = false }()

	ui.characterSelect.SetSelected(ct.Name)
	files, err := ui.workspace.Library().ArticleFiles(ct.Name)
	if err != nil {
		log.Printf("Failed to list articles files of %s: %v", ct.Name, err)
	}
	ui.articlesSelect.SetOptions(files)
	ui.articlesSelect.SetSelected(ct.ArticlesFile)
}

// onCharacterChanged switches the active document to another character type
func (ui *RootUI) onCharacterChanged(name string) {
	if ui.syncing || name == "" {
		return
	}
	ct, err := ui.workspace.Library().DefaultType(name)
	if err != nil {
		ui.showError(KeyErrorOpeningFile, err)
		return
	}
	ui.setCharacterType(ct)
}

// onArticlesChanged switches the active document to another articles file
func (ui *RootUI) onArticlesChanged(file string) {
	if ui.syncing || file == "" {
		return
	}
	ui.setCharacterType(model.CharacterType{Name: ui.characterSelect.Selected, ArticlesFile: file})
}

func (ui *RootUI) setCharacterType(ct model.CharacterType) {
	doc, ok := ui.ActiveDocument()
	if !ok {
		ui.newDocument(ct)
		return
	}
	if doc.Project.Type == ct {
		return
	}
	if err := ui.workspace.SetCharacterType(doc.ID(), ct); err != nil {
		ui.showError(KeyErrorOpeningFile, err)
		ui.syncCharacterSelects(doc.Project.Type)
		return
	}
	ui.settings.SetLastCharacter(ct.Name, ct.ArticlesFile)
	ui.showActive(doc)
}

// onZoomChanged stores the preview zoom and redraws
func (ui *RootUI) onZoomChanged(label string) {
	zoom, err := strconv.Atoi(strings.TrimSuffix(label, "x"))
	if err != nil {
		return
	}
	ui.settings.SetZoom(zoom)
	if doc, ok := ui.ActiveDocument(); ok {
		ui.refreshPreview(doc)
	}
}

// onToggleAsset handles a click on an asset in the category panel
func (ui *RootUI) onToggleAsset(categoryID, assetID string) {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return
	}
	if err := ui.workspace.Toggle(doc.ID(), categoryID, assetID); err != nil {
		ui.showNotification(err.Error(), false)
		return
	}
	ui.refreshEditor(doc)
}

// onClearCategory clears the category of the visible tab
func (ui *RootUI) onClearCategory() {
	ui.onClearCategoryID(ui.categoryPanel.SelectedCategory())
}

func (ui *RootUI) onClearCategoryID(categoryID string) {
	doc, ok := ui.ActiveDocument()
	if !ok || categoryID == "" {
		return
	}
	if err := ui.workspace.Clear(doc.ID(), categoryID); err != nil {
		ui.showNotification(err.Error(), false)
		return
	}
	ui.refreshEditor(doc)
}

// refreshEditor redraws check marks and preview after a selection change
func (ui *RootUI) refreshEditor(doc *editor.Document) {
	ui.categoryPanel.Refresh()
	ui.refreshPreview(doc)
}

// onRandomize draws a random outfit for the active document
func (ui *RootUI) onRandomize() {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return
	}
	seed, err := ui.workspace.Randomize(doc.ID(), nil)
	if err != nil {
		ui.showNotification(err.Error(), false)
		return
	}
	ui.showSeed(seed)
	ui.refreshEditor(doc)
}

// onRandomizeAll draws a random character type and outfit
func (ui *RootUI) onRandomizeAll() {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return
	}
	seed, err := ui.workspace.RandomizeAll(doc.ID())
	if err != nil {
		ui.showNotification(err.Error(), false)
		return
	}
	ui.showSeed(seed)
	ui.showActive(doc)
}

func (ui *RootUI) showSeed(seed uint64) {
	ui.seedLabel.SetText(fmt.Sprintf(SeedLabelFormat, ui.localization.GetText(KeySeedUsed), seed))
}

// onNew opens a new document of the character type shown in the pickers
func (ui *RootUI) onNew() {
	ui.newDocument(ui.currentType())
}

func (ui *RootUI) newDocument(ct model.CharacterType) {
	if ct.Name == "" {
		ui.showNotification(ui.localization.GetText(KeyNoResources), false)
		return
	}
	doc, err := ui.workspace.NewDocument(ct)
	if err != nil {
		ui.showError(KeyErrorOpeningFile, err)
		return
	}
	ui.settings.SetLastCharacter(ct.Name, ct.ArticlesFile)
	ui.ensureTab(doc)
	ui.selectDocument(doc.ID())
}

// currentType returns the character type for a new document: the active
// one, the one used last or the first available
func (ui *RootUI) currentType() model.CharacterType {
	if doc, ok := ui.ActiveDocument(); ok {
		return doc.Project.Type
	}
	lib := ui.workspace.Library()
	name, file := ui.settings.GetLastCharacter()
	if last := (model.CharacterType{Name: name, ArticlesFile: file}); last.Validate() == nil {
		if _, err := lib.Load(last); err == nil {
			return last
		}
	}
	names, err := lib.CharacterTypes()
	if err != nil || len(names) == 0 {
		return model.CharacterType{}
	}
	ct, err := lib.DefaultType(names[0])
	if err != nil {
		return model.CharacterType{}
	}
	return ct
}

// onOpen shows the open dialog for project files
func (ui *RootUI) onOpen() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.openPath(path)
	}, ui.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{project.Extension}))
	open.Show()
}

// openPath opens a project file, warning about articles that no longer exist
func (ui *RootUI) openPath(path string) {
	log.Printf("Opening project %s", path)
	doc, err := ui.workspace.Open(path)
	if doc == nil {
		ui.showError(KeyErrorOpeningFile, err)
		return
	}
	ui.ensureTab(doc)
	ui.selectDocument(doc.ID())
	ui.createMenu()

	var dangling *project.DanglingError
	if errors.As(err, &dangling) {
		refs := make([]string, 0, len(dangling.Refs))
		for _, ref := range dangling.Refs {
			refs = append(refs, ref.String())
		}
		dialog.ShowInformation(ui.localization.GetText(KeyOpen),
			ui.localization.GetText(KeyDanglingRefs)+":\n"+strings.Join(refs, "\n"), ui.window)
	} else if err != nil {
		ui.showError(KeyErrorOpeningFile, err)
	}
}

// onSave saves the active document, asking for a path the first time
func (ui *RootUI) onSave() {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return
	}
	if doc.Project.Path == "" {
		ui.onSaveAs()
		return
	}
	ui.saveAs(doc, doc.Project.Path)
}

// onSaveAs asks for a path and saves the active document there
func (ui *RootUI) onSaveAs() {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return
	}
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.EqualFold(filepath.Ext(path), project.Extension) {
			path += project.Extension
		}
		ui.saveAs(doc, path)
	}, ui.window)
	save.SetFileName(doc.Project.GetDisplayTitle() + project.Extension)
	save.SetFilter(storage.NewExtensionFileFilter([]string{project.Extension}))
	if doc.Project.Path != "" {
		ui.setDialogLocation(save, filepath.Dir(doc.Project.Path))
	}
	save.Show()
}

func (ui *RootUI) saveAs(doc *editor.Document, path string) {
	if err := ui.workspace.SaveAs(doc.ID(), path); err != nil {
		log.Printf("Error saving %s: %v", path, err)
		ui.showError(KeyErrorSaving, err)
		return
	}
	log.Printf("Project saved to %s", path)
	ui.showNotification(ui.localization.GetText(KeySaved)+MiddleDotSeparator+path, false)
	ui.createMenu()
}

// onExport asks for a PNG path and exports the active document
func (ui *RootUI) onExport() {
	doc, ok := ui.ActiveDocument()
	if !ok {
		return
	}
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.EqualFold(filepath.Ext(path), export.Extension) {
			path += export.Extension
		}
		ui.exportTo(doc, path)
	}, ui.window)
	save.SetFileName(doc.Project.GetDisplayTitle() + export.Extension)
	save.SetFilter(storage.NewExtensionFileFilter([]string{export.Extension}))
	ui.setDialogLocation(save, ui.settings.GetExportDirectory())
	save.Show()
}

func (ui *RootUI) exportTo(doc *editor.Document, path string) {
	if err := ui.workspace.Export(doc.ID(), path); err != nil {
		log.Printf("Error exporting %s: %v", path, err)
		ui.showError(KeyErrorExporting, err)
		return
	}
	log.Printf("Exported %s to %s", doc.ID(), path)
	ui.settings.SetExportDirectory(filepath.Dir(path))

	if ui.settings.GetAutoRevealOnExport() {
		ui.onRevealFile(path)
	}
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyExported),
		Content: filepath.Base(path),
	})
	ui.showExportToast(path)
}

func (ui *RootUI) setDialogLocation(d *dialog.FileDialog, dir string) {
	if dir == "" {
		return
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Printf("Cannot use dialog location %s: %v", dir, err)
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		log.Printf("Cannot use dialog location %s: %v", dir, err)
		return
	}
	d.SetLocation(lister)
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showError(KeyErrorOpeningFile, err)
	}
}

// onOpenFile handles opening an exported file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showError(KeyErrorOpeningFile, err)
	}
}

// onCloseActive closes the active document
func (ui *RootUI) onCloseActive() {
	if item, ok := ui.tabs[ui.activeID]; ok {
		ui.onCloseTab(item)
	}
}

// onCloseTab asks before closing a document with unsaved changes
func (ui *RootUI) onCloseTab(item *container.TabItem) {
	id := ui.documentForTab(item)
	doc, ok := ui.workspace.Document(id)
	if !ok {
		ui.docTabs.Remove(item)
		return
	}
	if !doc.Dirty {
		ui.closeDocument(id)
		return
	}
	dialog.ShowConfirm(ui.localization.GetText(KeyUnsavedChanges), ui.localization.GetText(KeyDiscardChanges), func(discard bool) {
		if discard {
			ui.closeDocument(id)
		}
	}, ui.window)
}

func (ui *RootUI) closeDocument(id string) {
	if err := ui.workspace.Close(id); err != nil {
		log.Printf("Close %s: %v", id, err)
	}
	if item, ok := ui.tabs[id]; ok {
		delete(ui.tabs, id)
		ui.docTabs.Remove(item)
	}
	if ui.activeID != id {
		return
	}
	if selected := ui.docTabs.Selected(); selected != nil {
		ui.activate(ui.documentForTab(selected))
	} else {
		ui.activate("")
	}
}

// onQuit records the session and asks before dropping unsaved changes
func (ui *RootUI) onQuit() {
	dirty := false
	for _, doc := range ui.workspace.Documents() {
		dirty = dirty || doc.Dirty
	}
	if !dirty {
		ui.quit()
		return
	}
	dialog.ShowConfirm(ui.localization.GetText(KeyUnsavedChanges), ui.localization.GetText(KeyDiscardChanges), func(discard bool) {
		if discard {
			ui.quit()
		}
	}, ui.window)
}

func (ui *RootUI) quit() {
	if err := ui.workspace.RecordSession(); err != nil {
		log.Printf("Failed to record session: %v", err)
	}
	if doc, ok := ui.ActiveDocument(); ok {
		ui.settings.SetLastCharacter(doc.Project.Type.Name, doc.Project.Type.ArticlesFile)
	}
	ui.window.Close()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func(resourceDirChanged bool) {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		ui.zoomSelect.SetSelected(fmt.Sprintf(ZoomLabelFormat, ui.settings.GetZoom()))
		if resourceDirChanged {
			ui.showNotification(ui.localization.GetText(KeyRestartRequired), false)
		}
	})
}

// showError shows a localized error dialog
func (ui *RootUI) showError(key string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(key), err), ui.window)
}

// showNotification displays a message in the notification panel under the pickers.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// showExportToast shows an in-app toast with actions for the exported file
func (ui *RootUI) showExportToast(path string) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyExported))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(filepath.Base(path))
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton("Reveal", func() { ui.onRevealFile(path) })
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() { ui.onOpenFile(path) })
	openBtn.Importance = widget.MediumImportance

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	content := container.NewVBox(header, messageLabel, container.NewHBox(revealBtn, openBtn))

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	toastPopup.Show()

	// Auto-hide after configured time
	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}

