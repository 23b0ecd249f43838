package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches schema documents from the source kinds declared in this
// package. Implementations live under internal/schema but satisfy this
// contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions collects the knobs a Loader implementation honors. Loading
// is offline-first: HTTP sources stay disabled until a client or the
// fallback is configured.
type LoaderOptions struct {
	// FileSystem serves fs sources and, when set, file sources too.
	FileSystem fs.FS

	// HTTPClient fetches URL sources. Nil disables HTTP unless
	// AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback permits URL sources via http.DefaultClient when no
	// client is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetches when the fallback client is used.
	RequestTimeout time.Duration

	// CacheSize bounds the number of loaded documents kept in memory, keyed
	// by source location. Zero disables caching. Repeated loads of the same
	// schema (several documents per invocation, retries) hit the cache.
	CacheSize int
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote schema documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using http.DefaultClient and assigns
// an optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithDocumentCache bounds an in-memory cache of loaded documents.
func WithDocumentCache(size int) LoaderOption {
	return func(opts *LoaderOptions) {
		if size > 0 {
			opts.CacheSize = size
		}
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
