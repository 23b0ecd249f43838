// Package template defines the renderer-agnostic template contract used by
// styled documentation renderers. The pongo2-backed adapter lives in the
// gotemplate subpackage; renderers depend only on the interface so template
// engines stay swappable.
package template
