package typegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	pkgtypegen "github.com/weiAX95/auto-create-tsfile-cli/pkg/typegen"
)

// HTTPOptions configure the remote generation engine.
type HTTPOptions struct {
	// Endpoint receives generation requests via POST.
	Endpoint string

	// Client overrides the HTTP client, primarily for tests and timeouts.
	Client *http.Client
}

// HTTPEngine posts schema units to a remote generation service and reads
// declaration text back from the response body.
type HTTPEngine struct {
	endpoint string
	client   *http.Client
}

// Ensure the implementation satisfies the public interface.
var _ pkgtypegen.Engine = (*HTTPEngine)(nil)

// NewHTTP constructs an HTTPEngine from pre-resolved options.
func NewHTTP(options HTTPOptions) *HTTPEngine {
	client := options.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPEngine{endpoint: options.Endpoint, client: client}
}

// Name identifies the engine in logs and CLI output.
func (e *HTTPEngine) Name() string {
	return "http"
}

type generateEnvelope struct {
	Name     string          `json:"name"`
	Language string          `json:"language"`
	Schema   json.RawMessage `json:"schema"`
}

// Generate posts the unit to the configured endpoint and returns the
// response body as declaration text.
func (e *HTTPEngine) Generate(ctx context.Context, req pkgtypegen.Request) (string, error) {
	if e.endpoint == "" {
		return "", errors.New("typegen: http endpoint is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", errors.New("typegen: request name is required")
	}
	if len(req.Schema) == 0 {
		return "", errors.New("typegen: request schema is empty")
	}

	payload, err := json.Marshal(generateEnvelope{
		Name:     req.Options.TypeName(req.Name),
		Language: req.Options.LanguageOrDefault(),
		Schema:   json.RawMessage(req.Schema),
	})
	if err != nil {
		return "", fmt.Errorf("typegen: marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("typegen: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("typegen: post %s: %w", e.endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New("typegen: unexpected status " + resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("typegen: read response: %w", err)
	}
	declarations := string(body)
	if strings.TrimSpace(declarations) == "" {
		return "", errors.New("typegen: service produced no declarations")
	}
	return declarations, nil
}
