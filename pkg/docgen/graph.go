package docgen

import (
	"fmt"
	"strings"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/declaration"
)

// Edge is one directed dependency between two declared types: From's fields
// mention To's name.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MatchMode selects how type names are detected inside field type
// expressions when building the dependency graph.
type MatchMode string

const (
	// MatchSubstring treats any substring occurrence of a type name as a
	// reference. A type named Id therefore also matches inside UserId.
	MatchSubstring MatchMode = "substring"
	// MatchIdentifier only counts whole-identifier occurrences, so Id does
	// not match inside UserId.
	MatchIdentifier MatchMode = "identifier"
)

// dependencyEdges walks every type in model order and emits an edge for
// each declared name found in its field type expressions, targets also in
// model order. Self-references yield self-loop edges.
func dependencyEdges(model declaration.Model, mode MatchMode) []Edge {
	names := model.Names()
	var edges []Edge
	for _, from := range names {
		entry, ok := model.Type(from)
		if !ok {
			continue
		}
		for _, to := range names {
			if references(entry, to, mode) {
				edges = append(edges, Edge{From: from, To: to})
			}
		}
	}
	return edges
}

func references(entry declaration.Type, name string, mode MatchMode) bool {
	for _, field := range entry.Fields {
		if mode == MatchIdentifier {
			if containsIdentifier(field.Type, name) {
				return true
			}
			continue
		}
		if strings.Contains(field.Type, name) {
			return true
		}
	}
	return false
}

// containsIdentifier reports whether name occurs in expression with no
// identifier character on either side.
func containsIdentifier(expression, name string) bool {
	for start := 0; ; {
		i := strings.Index(expression[start:], name)
		if i < 0 {
			return false
		}
		i += start
		leftClear := i == 0 || !identifierChar(expression[i-1])
		rightClear := i+len(name) >= len(expression) || !identifierChar(expression[i+len(name)])
		if leftClear && rightClear {
			return true
		}
		start = i + 1
	}
}

func identifierChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '$':
		return true
	}
	return false
}

// MermaidGraph returns the mermaid source for the artifact's dependency
// edges, or the empty string when there are none. Renderers embed it where
// a fenced block is not appropriate.
func (a Artifact) MermaidGraph() string {
	if len(a.Edges) == 0 {
		return ""
	}
	return mermaidGraph(a.Edges)
}

// mermaidGraph renders edges as a mermaid top-down graph body.
func mermaidGraph(edges []Edge) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, edge := range edges {
		fmt.Fprintf(&b, "  %s --> %s\n", edge.From, edge.To)
	}
	return b.String()
}
