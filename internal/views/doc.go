// Package views synthesizes the per-person and aggregate document models.
//
// A view is plain data: the site package turns it into HTML. Every href in a
// view is the referring document's RelPrefix followed by the table link path
// of the target, so two views linking the same person always agree.
package views
