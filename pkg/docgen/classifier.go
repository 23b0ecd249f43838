package docgen

import "strings"

// Category is the coarse classification of a field's type expression. It
// drives the phrasing of validation rules and the sample values used in
// example literals.
type Category string

const (
	CategoryText       Category = "text"
	CategoryNumber     Category = "number"
	CategoryBoolean    Category = "boolean"
	CategoryTemporal   Category = "temporal"
	CategoryStructured Category = "structured"
)

// phrase returns the human-readable clause used in validation rules.
func (c Category) phrase() string {
	switch c {
	case CategoryText:
		return "a text value"
	case CategoryNumber:
		return "a numeric value"
	case CategoryBoolean:
		return "a boolean value"
	case CategoryTemporal:
		return "a date/time value"
	default:
		return "a structured value"
	}
}

// sample returns the JSON literal used for the category in example objects.
func (c Category) sample() string {
	switch c {
	case CategoryText:
		return `"text"`
	case CategoryNumber:
		return "123"
	case CategoryBoolean:
		return "true"
	case CategoryTemporal:
		return `"2024-01-01T00:00:00Z"`
	default:
		return "{}"
	}
}

var defaultTokens = map[string]Category{
	"string":    CategoryText,
	"number":    CategoryNumber,
	"int":       CategoryNumber,
	"integer":   CategoryNumber,
	"float":     CategoryNumber,
	"double":    CategoryNumber,
	"bigint":    CategoryNumber,
	"bool":      CategoryBoolean,
	"boolean":   CategoryBoolean,
	"date":      CategoryTemporal,
	"datetime":  CategoryTemporal,
	"timestamp": CategoryTemporal,
}

// Classifier maps raw type expressions to categories. Lookup is by the
// lowercased, trimmed expression; anything without a registered token
// classifies as CategoryStructured. The zero value is not usable, construct
// one with NewClassifier.
type Classifier struct {
	tokens map[string]Category
}

// ClassifierOption adjusts the token table of a Classifier.
type ClassifierOption func(*Classifier)

// WithToken registers or overrides a single token. Tokens are matched
// case-insensitively.
func WithToken(token string, category Category) ClassifierOption {
	return func(c *Classifier) {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return
		}
		c.tokens[token] = category
	}
}

// WithTokens registers or overrides several tokens at once.
func WithTokens(tokens map[string]Category) ClassifierOption {
	return func(c *Classifier) {
		for token, category := range tokens {
			WithToken(token, category)(c)
		}
	}
}

// NewClassifier builds a Classifier seeded with the default token table.
func NewClassifier(options ...ClassifierOption) *Classifier {
	classifier := &Classifier{tokens: make(map[string]Category, len(defaultTokens))}
	for token, category := range defaultTokens {
		classifier.tokens[token] = category
	}
	for _, option := range options {
		if option != nil {
			option(classifier)
		}
	}
	return classifier
}

// Classify resolves the category for a raw type expression.
func (c *Classifier) Classify(expression string) Category {
	if category, ok := c.tokens[strings.ToLower(strings.TrimSpace(expression))]; ok {
		return category
	}
	return CategoryStructured
}
