// Package docgen turns an extracted declaration model into documentation.
// The Synthesizer fans one model out to four generators (property tables,
// example literals, a type-dependency graph, validation-rule summaries) and
// assembles their output into a single Artifact whose Markdown rendering is
// byte-stable across runs.
package docgen
