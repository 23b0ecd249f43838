package docgen

import (
	"fmt"
	"strings"
)

// PropertyRow is one row of a type's property table. Required carries the
// rendered "Yes"/"No" text and Description is already sanitized; markdown
// escaping happens at render time so structured consumers see plain text.
type PropertyRow struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    string `json:"required"`
	Description string `json:"description"`
}

// TypeDoc collects the generated documentation pieces for one declared
// type. Example and Rules stay empty when the corresponding generator is
// disabled or the type has no fields.
type TypeDoc struct {
	Name    string        `json:"name"`
	Rows    []PropertyRow `json:"rows"`
	Example string        `json:"example,omitempty"`
	Rules   []string      `json:"rules,omitempty"`
}

// Artifact is the assembled documentation for one document. It keeps the
// generated pieces structured so renderers can lay them out selectively;
// Markdown produces the canonical concatenated form.
type Artifact struct {
	Title string    `json:"title"`
	Types []TypeDoc `json:"types"`
	Edges []Edge    `json:"edges,omitempty"`
}

const noFieldsNote = "_No fields found._"

// Markdown renders the artifact in its canonical order: title, then per
// type the property table, example and validation rules, then the
// dependency graph. Output is byte-identical for identical artifacts. An
// artifact without types renders the title line only; the graph section is
// omitted when there are no edges.
func (a Artifact) Markdown() []byte {
	var b strings.Builder
	b.WriteString("# " + a.Title + "\n")
	for _, section := range a.Types {
		b.WriteString("\n## " + section.Name + "\n\n")
		b.WriteString(propertyTable(section.Rows))
		if section.Example != "" {
			b.WriteString("\n### Example\n\n```json\n" + section.Example + "\n```\n")
		}
		if len(section.Rules) > 0 {
			b.WriteString("\n### Validation Rules\n\n")
			for _, rule := range section.Rules {
				b.WriteString("- " + rule + "\n")
			}
		}
	}
	if len(a.Edges) > 0 {
		b.WriteString("\n## Type Dependencies\n\n```mermaid\n")
		b.WriteString(mermaidGraph(a.Edges))
		b.WriteString("```\n")
	}
	return []byte(b.String())
}

func propertyTable(rows []PropertyRow) string {
	if len(rows) == 0 {
		return noFieldsNote + "\n"
	}
	var b strings.Builder
	b.WriteString("| Property | Type | Required | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s |\n",
			row.Name, escapeCell(row.Type), row.Required, escapeCell(row.Description))
	}
	return b.String()
}

// escapeCell keeps literal pipes from splitting table cells.
func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}
