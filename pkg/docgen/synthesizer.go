package docgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/declaration"
)

// Document is one named declaration document handed to the Synthesizer.
// Descriptions optionally carries schema-provided property descriptions
// keyed by type name, then field name; fields without an entry show a
// placeholder in the table.
type Document struct {
	Title        string
	Model        declaration.Model
	Descriptions map[string]map[string]string
}

// Synthesizer fans a declaration model out to the four documentation
// generators and assembles the result. All generators are enabled by
// default; construct with New.
type Synthesizer struct {
	classifier *Classifier
	examples   bool
	graph      bool
	rules      bool
	match      MatchMode
	types      []string
}

// Option adjusts synthesizer behavior.
type Option func(*Synthesizer)

// WithClassifier replaces the type-category classifier shared by the
// example and validation-rule generators. Nil keeps the default.
func WithClassifier(classifier *Classifier) Option {
	return func(s *Synthesizer) {
		if classifier != nil {
			s.classifier = classifier
		}
	}
}

// WithExamples toggles example-literal generation.
func WithExamples(enabled bool) Option {
	return func(s *Synthesizer) {
		s.examples = enabled
	}
}

// WithGraph toggles dependency-graph generation.
func WithGraph(enabled bool) Option {
	return func(s *Synthesizer) {
		s.graph = enabled
	}
}

// WithRules toggles validation-rule generation.
func WithRules(enabled bool) Option {
	return func(s *Synthesizer) {
		s.rules = enabled
	}
}

// WithMatchMode selects the reference detector used for the dependency
// graph. The default is MatchSubstring.
func WithMatchMode(mode MatchMode) Option {
	return func(s *Synthesizer) {
		if mode == MatchSubstring || mode == MatchIdentifier {
			s.match = mode
		}
	}
}

// WithTypes restricts synthesis to the named types; the dependency graph
// then only covers edges between kept types. An empty list keeps every
// type.
func WithTypes(names ...string) Option {
	return func(s *Synthesizer) {
		s.types = append(s.types, names...)
	}
}

// New builds a Synthesizer with examples, validation rules and the
// dependency graph enabled and substring reference matching.
func New(options ...Option) *Synthesizer {
	synthesizer := &Synthesizer{
		classifier: NewClassifier(),
		examples:   true,
		graph:      true,
		rules:      true,
		match:      MatchSubstring,
	}
	for _, option := range options {
		if option != nil {
			option(synthesizer)
		}
	}
	return synthesizer
}

// Synthesize assembles the documentation artifact for one document. The
// model may be empty; the only failure is a document without a title, since
// the artifact could not carry a header.
func (s *Synthesizer) Synthesize(doc Document) (Artifact, error) {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		return Artifact{}, errors.New("docgen: document title is required")
	}

	model := doc.Model.Filter(s.types...)

	artifact := Artifact{Title: title}
	for _, entry := range model.Types() {
		section := TypeDoc{
			Name: entry.Name,
			Rows: s.propertyRows(entry, doc.Descriptions[entry.Name]),
		}
		if len(entry.Fields) > 0 {
			if s.examples {
				section.Example = exampleLiteral(entry, s.classifier)
			}
			if s.rules {
				section.Rules = s.validationRules(entry)
			}
		}
		artifact.Types = append(artifact.Types, section)
	}
	if s.graph {
		artifact.Edges = dependencyEdges(model, s.match)
	}
	return artifact, nil
}

func (s *Synthesizer) propertyRows(entry declaration.Type, descriptions map[string]string) []PropertyRow {
	var rows []PropertyRow
	for _, field := range entry.Fields {
		row := PropertyRow{
			Name:        field.Name,
			Type:        field.Type,
			Required:    "Yes",
			Description: "-",
		}
		if field.Optional {
			row.Required = "No"
		}
		if described := sanitizeDescription(descriptions[field.Name]); described != "" {
			row.Description = described
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Synthesizer) validationRules(entry declaration.Type) []string {
	rules := make([]string, 0, len(entry.Fields))
	for _, field := range entry.Fields {
		clause := "is required and must be"
		if field.Optional {
			clause = "is optional and should be"
		}
		rules = append(rules, fmt.Sprintf("`%s` %s %s.",
			field.Name, clause, s.classifier.Classify(field.Type).phrase()))
	}
	return rules
}

// exampleLiteral renders one illustrative JSON object whose keys follow the
// declared field order. Field names come from identifier matches, so plain
// quoting is safe.
func exampleLiteral(entry declaration.Type, classifier *Classifier) string {
	if len(entry.Fields) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, field := range entry.Fields {
		b.WriteString(`  "` + field.Name + `": ` + classifier.Classify(field.Type).sample())
		if i < len(entry.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
