// Package history remembers recently opened project files and the files
// that were open when the last session ended.
//
// Preferences keeps the lists in fyne preferences for the desktop app,
// SQLite keeps them in a small database for the command line tool.
package history
