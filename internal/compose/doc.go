// Package compose turns a selection into a single RGBA image.
//
// Categories are painted in ascending depth order with Porter-Duff "over"
// onto a fresh transparent canvas, so the output depends only on the
// catalog and the selection, never on the order selections were made.
package compose
