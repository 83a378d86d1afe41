package platform

// Package platform contains OS integration glue: filesystem helpers,
// atomic file writes, resource directory discovery and OS open/reveal.
