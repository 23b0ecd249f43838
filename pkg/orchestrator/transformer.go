package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
)

// Transformer mutates the assembled document after extraction but before
// synthesis. Implementations can retitle the document, patch descriptions,
// or rewrite the model.
type Transformer interface {
	Transform(ctx context.Context, document *docgen.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, document *docgen.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, document *docgen.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, document)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON
// sidecar document. The document shape supports a title override, a type
// allowlist, and per-type description patches:
//
//	{
//	  "title": "Billing API Types",
//	  "types": ["Invoice", "LineItem"],
//	  "descriptions": {
//	    "Invoice": {"total": "Grand total in cents."}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Title        string                       `json:"title"`
	Types        []string                     `json:"types"`
	Descriptions map[string]map[string]string `json:"descriptions"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied document.
func (t *JSONPresetTransformer) Transform(ctx context.Context, document *docgen.Document) error {
	if document == nil {
		return errors.New("json preset transformer: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		document.Title = title
	}
	if len(t.document.Types) > 0 {
		document.Model = document.Model.Filter(t.document.Types...)
	}
	for typeName, fields := range t.document.Descriptions {
		if len(fields) == 0 {
			continue
		}
		if document.Descriptions == nil {
			document.Descriptions = make(map[string]map[string]string, len(t.document.Descriptions))
		}
		document.Descriptions[typeName] = mergeStringMap(document.Descriptions[typeName], fields)
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
