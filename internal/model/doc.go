package model

// Package model defines domain data structures shared across the editor:
// character types, layering categories, selectable assets, per-character
// selections and persisted projects. Structures are plain values so they can
// be bound directly in the UI and compared in tests.
