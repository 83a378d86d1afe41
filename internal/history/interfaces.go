package history

// DefaultMaxRecent bounds the recent files list when no limit is configured
const DefaultMaxRecent = 10

// Recents stores the recent files list and the last session
type Recents interface {
	// RecentFiles returns paths most-recent-first
	RecentFiles() []string
	// AddRecent moves path to the front of the list
	AddRecent(path string) error
	// SessionFiles returns the paths recorded by the last SetSessionFiles
	SessionFiles() []string
	// SetSessionFiles replaces the session list
	SetSessionFiles(paths []string) error
}

// Push returns list with path moved to the front, duplicates removed and
// at most limit entries kept. Empty paths are ignored.
func Push(list []string, path string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxRecent
	}
	out := make([]string, 0, min(len(list)+1, limit))
	if path != "" {
		out = append(out, path)
	}
	for _, p := range list {
		if len(out) >= limit {
			break
		}
		if p == "" || p == path {
			continue
		}
		out = append(out, p)
	}
	return out
}

// dedupe keeps the first occurrence of every non-empty path
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
