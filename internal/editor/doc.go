// Package editor ties catalogs, selection state, rendering and project files
// together into open documents.
//
// A Workspace owns every open document. All mutations go through it so a
// render never observes a half-applied change, and every change is reported
// through the update callback for live preview.
package editor
