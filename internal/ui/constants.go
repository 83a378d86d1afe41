package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconClose = "×"
	IconCheck = "✓"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	ZoomLabelFormat    = "%dx"
	SeedLabelFormat    = "%s: %d"
)

// Layout sizing
const (
	AssetIconSize          = 48
	WindowWidth    float32 = 1000
	WindowHeight   float32 = 700
	SettingsWidth  float32 = 520
	SettingsHeight float32 = 420
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 320
	ToastHeight   float32 = 110
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)
