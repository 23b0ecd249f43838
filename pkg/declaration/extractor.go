package declaration

import (
	"regexp"
	"strings"
)

// fieldPattern matches one field segment: identifier, optional marker,
// separator, type expression, optional terminator. Segments that do not
// match are skipped.
var fieldPattern = regexp.MustCompile(`^\s*(?:readonly\s+)?([A-Za-z_$][A-Za-z0-9_$]*)\s*(\?)?\s*:\s*(.+?)\s*[;,]?\s*$`)

// Extractor scans raw declaration text and builds a Model from it.
type Extractor struct {
	keywords []string
	naive    bool
	header   *regexp.Regexp
}

// Option adjusts extractor behavior.
type Option func(*Extractor)

// WithKeywords replaces the set of declaration keywords the extractor
// recognizes. Empty input keeps the defaults.
func WithKeywords(keywords ...string) Option {
	return func(e *Extractor) {
		if len(keywords) == 0 {
			return
		}
		e.keywords = keywords
	}
}

// WithNaiveBoundaries disables nested-brace balancing when locating
// declaration bodies: a body runs from its opening brace to the next
// declaration header or end of input. Fields declared inside nested object
// types then leak into the enclosing type.
func WithNaiveBoundaries() Option {
	return func(e *Extractor) {
		e.naive = true
	}
}

// New builds an Extractor. Without options it recognizes interface, type,
// class and enum declarations and balances nested braces when locating
// declaration bodies.
func New(options ...Option) *Extractor {
	extractor := &Extractor{
		keywords: []string{"interface", "type", "class", "enum"},
	}
	for _, option := range options {
		if option != nil {
			option(extractor)
		}
	}
	extractor.header = headerPattern(extractor.keywords)
	return extractor
}

// Extract builds a Model from raw declaration text. Extraction is
// best-effort and never fails: text without a recognizable header yields an
// empty model, and body lines that do not look like fields are skipped.
// Redeclaring a type name replaces its fields but keeps its position.
func (e *Extractor) Extract(text string) Model {
	var model Model
	headers := e.header.FindAllStringSubmatchIndex(text, -1)
	for i, match := range headers {
		limit := len(text)
		if i+1 < len(headers) {
			limit = headers[i+1][0]
		}
		entry := Type{Name: text[match[2]:match[3]]}
		if body, ok := e.body(text, match[1], limit); ok {
			entry.Fields = e.fields(body)
		}
		model.upsert(entry)
	}
	return model
}

// body returns the text of the declaration body that opens between from and
// limit. The first open brace after the header is taken as the body opener.
// The body ends at the matching close brace, or at limit when braces never
// balance or naive boundaries are enabled.
func (e *Extractor) body(text string, from, limit int) (string, bool) {
	offset := strings.IndexByte(text[from:limit], '{')
	if offset < 0 {
		return "", false
	}
	open := from + offset
	if !e.naive {
		depth := 0
		for i := open; i < len(text); i++ {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return text[open+1 : i], true
				}
			}
		}
	}
	return text[open+1 : limit], true
}

func (e *Extractor) fields(body string) []Field {
	var out []Field
	lines := strings.Split(body, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		if !e.naive {
			// A field whose type expression opens more braces than it
			// closes continues on the following lines. Fold them into one
			// segment so the nested object stays a single expression.
			if surplus := braceSurplus(line); surplus > 0 {
				parts := []string{trimmed}
				for surplus > 0 && i+1 < len(lines) {
					i++
					surplus += braceSurplus(lines[i])
					parts = append(parts, strings.TrimSpace(lines[i]))
				}
				line = strings.Join(parts, " ")
			}
		}
		for _, segment := range splitTopLevel(line) {
			match := fieldPattern.FindStringSubmatch(segment)
			if match == nil {
				continue
			}
			expression := strings.TrimSpace(match[3])
			if expression == "" {
				continue
			}
			out = append(out, Field{
				Name:     match[1],
				Optional: match[2] == "?",
				Type:     expression,
			})
		}
	}
	return out
}

// splitTopLevel splits a line into field segments on semicolons that sit
// outside braced groups, so single-line bodies with several fields still
// yield one segment per field.
func splitTopLevel(line string) []string {
	var segments []string
	depth, start := 0, 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				segments = append(segments, line[start:i])
				start = i + 1
			}
		}
	}
	if start < len(line) {
		segments = append(segments, line[start:])
	}
	return segments
}

func headerPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, keyword := range keywords {
		quoted[i] = regexp.QuoteMeta(keyword)
	}
	pattern := `(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?(?:` +
		strings.Join(quoted, "|") +
		`)\s+([A-Za-z_$][A-Za-z0-9_$]*)`
	return regexp.MustCompile(pattern)
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "/*") ||
		strings.HasPrefix(line, "*")
}

func braceSurplus(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}
