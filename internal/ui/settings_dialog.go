package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/retromoe/stortrooper-editor/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(resourceDirChanged bool)

	// UI components
	resourceDirEntry *widget.Entry
	exportDirEntry   *widget.Entry
	maxRecentEntry   *widget.Entry
	zoomSelect       *widget.Select
	autoRevealCheck  *widget.Check
	languageSelect   *widget.Select

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog opens the settings dialog and calls onSaved after saving
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func(resourceDirChanged bool)) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.resourceDirEntry = widget.NewEntry()
	browseResBtn := widget.NewButton(text(KeyBrowse), func() { sd.onBrowseDirectory(sd.resourceDirEntry) })
	resourceDirRow := container.NewBorder(nil, nil, nil, browseResBtn, sd.resourceDirEntry)

	sd.exportDirEntry = widget.NewEntry()
	browseExportBtn := widget.NewButton(text(KeyBrowse), func() { sd.onBrowseDirectory(sd.exportDirEntry) })
	exportDirRow := container.NewBorder(nil, nil, nil, browseExportBtn, sd.exportDirEntry)

	sd.maxRecentEntry = widget.NewEntry()
	sd.maxRecentEntry.SetPlaceHolder(strconv.Itoa(config.MinMaxRecent) + "-" + strconv.Itoa(config.MaxMaxRecent))

	zoomOptions := []string{}
	for _, z := range sd.settings.GetZoomOptions() {
		zoomOptions = append(zoomOptions, strconv.Itoa(z))
	}
	sd.zoomSelect = widget.NewSelect(zoomOptions, nil)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	// Language selection shows display names, sorted for a stable order
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyResourceDirectory), resourceDirRow),
		widget.NewFormItem(text(KeyExportDirectory), exportDirRow),
		widget.NewFormItem(text(KeyMaxRecent), sd.maxRecentEntry),
		widget.NewFormItem(text(KeyZoom), sd.zoomSelect),
		widget.NewFormItem("", sd.autoRevealCheck),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.resourceDirEntry.SetText(sd.settings.GetResourceDirectory())
	sd.exportDirEntry.SetText(sd.settings.GetExportDirectory())
	sd.maxRecentEntry.SetText(strconv.Itoa(sd.settings.GetMaxRecentFiles()))
	sd.zoomSelect.SetSelected(strconv.Itoa(sd.settings.GetZoom()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnExport())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseDirectory fills entry with a folder chosen by the user
func (sd *SettingsDialog) onBrowseDirectory(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	resourceDirChanged := sd.apply()

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
	if sd.onSaved != nil {
		sd.onSaved(resourceDirChanged)
	}
}

// apply stores the form values and reports whether the resource directory changed
func (sd *SettingsDialog) apply() bool {
	resourceDirChanged := false
	if dir := sd.resourceDirEntry.Text; dir != "" && dir != sd.settings.GetResourceDirectory() {
		sd.settings.SetResourceDirectory(dir)
		resourceDirChanged = true
	}

	if dir := sd.exportDirEntry.Text; dir != "" {
		sd.settings.SetExportDirectory(dir)
	}

	// Invalid numbers keep the previous value; setters clamp the rest
	if count, err := strconv.Atoi(sd.maxRecentEntry.Text); err == nil {
		sd.settings.SetMaxRecentFiles(count)
	}
	if zoom, err := strconv.Atoi(sd.zoomSelect.Selected); err == nil {
		sd.settings.SetZoom(zoom)
	}

	sd.settings.SetAutoRevealOnExport(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	return resourceDirChanged
}
