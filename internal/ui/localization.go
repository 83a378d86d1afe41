package ui

// Package ui provides user interface components

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeyEdit              = "edit"
	KeyNew               = "new"
	KeyOpen              = "open"
	KeyOpenRecent        = "open_recent"
	KeyNoRecentFiles     = "no_recent_files"
	KeySave              = "save"
	KeySaveAs            = "save_as"
	KeyExport            = "export"
	KeyClose             = "close"
	KeyRandomize         = "randomize"
	KeyRandomizeAll      = "randomize_all"
	KeyClearCategory     = "clear_category"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyCharacter         = "character"
	KeyArticles          = "articles"
	KeyZoom              = "zoom"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyResourceDirectory = "resource_directory"
	KeyExportDirectory   = "export_directory"
	KeyMaxRecent         = "max_recent"
	KeyAutoReveal        = "auto_reveal"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
	KeySaved             = "saved"
	KeyExported          = "exported"
	KeySeedUsed          = "seed_used"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyErrorSaving       = "error_saving"
	KeyErrorExporting    = "error_exporting"
	KeyDanglingRefs      = "dangling_refs"
	KeyUnsavedChanges    = "unsaved_changes"
	KeyDiscardChanges    = "discard_changes"
	KeyNoResources       = "no_resources"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"es": "Español",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "StorTrooper",
		KeyFile:              "File",
		KeyEdit:              "Edit",
		KeyNew:               "New",
		KeyOpen:              "Open…",
		KeyOpenRecent:        "Open Recent",
		KeyNoRecentFiles:     "No recent files",
		KeySave:              "Save",
		KeySaveAs:            "Save As…",
		KeyExport:            "Export PNG…",
		KeyClose:             "Close",
		KeyRandomize:         "Random outfit",
		KeyRandomizeAll:      "Random character",
		KeyClearCategory:     "Remove",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyCharacter:         "Character",
		KeyArticles:          "Articles",
		KeyZoom:              "Zoom",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyResourceDirectory: "Resource Directory",
		KeyExportDirectory:   "Export Directory",
		KeyMaxRecent:         "Recent Files Shown",
		KeyAutoReveal:        "Reveal exported images",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartRequired:   "A new resource directory is used after restarting.",
		KeySaved:             "Saved",
		KeyExported:          "Exported",
		KeySeedUsed:          "Seed",
		KeyErrorOpeningFile:  "Error opening file",
		KeyErrorSaving:       "Error saving project",
		KeyErrorExporting:    "Error exporting image",
		KeyDanglingRefs:      "Some articles of this project no longer exist and were removed",
		KeyUnsavedChanges:    "Unsaved changes",
		KeyDiscardChanges:    "Close without saving?",
		KeyNoResources:       "No character resources found. Choose a resource directory in Settings.",
	}

	// Spanish texts
	l.texts["es"] = map[string]string{
		KeyAppTitle:          "StorTrooper",
		KeyFile:              "Archivo",
		KeyEdit:              "Editar",
		KeyNew:               "Nuevo",
		KeyOpen:              "Abrir…",
		KeyOpenRecent:        "Abrir reciente",
		KeyNoRecentFiles:     "No hay archivos recientes",
		KeySave:              "Guardar",
		KeySaveAs:            "Guardar como…",
		KeyExport:            "Exportar PNG…",
		KeyClose:             "Cerrar",
		KeyRandomize:         "Ropa aleatoria",
		KeyRandomizeAll:      "Personaje aleatorio",
		KeyClearCategory:     "Quitar",
		KeySettings:          "Preferencias",
		KeyLanguage:          "Idioma",
		KeyCharacter:         "Personaje",
		KeyArticles:          "Artículos",
		KeyZoom:              "Zoom",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Examinar",
		KeyResourceDirectory: "Carpeta de recursos",
		KeyExportDirectory:   "Carpeta de exportación",
		KeyMaxRecent:         "Archivos recientes",
		KeyAutoReveal:        "Mostrar imágenes exportadas",
		KeySettingsSaved:     "¡Preferencias guardadas!",
		KeyRestartRequired:   "La nueva carpeta de recursos se usará al reiniciar.",
		KeySaved:             "Guardado",
		KeyExported:          "Exportado",
		KeySeedUsed:          "Semilla",
		KeyErrorOpeningFile:  "Error al abrir el archivo",
		KeyErrorSaving:       "Error al guardar el proyecto",
		KeyErrorExporting:    "Error al exportar la imagen",
		KeyDanglingRefs:      "Algunos artículos de este proyecto ya no existen y se han quitado",
		KeyUnsavedChanges:    "Cambios sin guardar",
		KeyDiscardChanges:    "¿Cerrar sin guardar?",
		KeyNoResources:       "No se encontraron recursos. Elija una carpeta de recursos en Preferencias.",
	}
}
