// Package catalog loads the per-character articles files into validated,
// read-only catalogs of layering categories and their selectable assets.
//
// A Catalog is immutable after Load and may be shared by every open project
// of the same character type. Library discovers character types under a
// resource root and caches their catalogs.
package catalog
