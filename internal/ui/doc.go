package ui

// Package ui contains the Fyne-based desktop editor. It wires menus, category
// tabs and the preview to an editor.Workspace and keeps every widget in sync
// through the workspace update callback. All UI strings are localized via
// Localization.
