package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
)

// Loader implements schema.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level tsfile package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	cache     *lru.Cache[string, schema.Document]
}

// Ensure the implementation satisfies the public interface.
var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options schema.LoaderOptions) schema.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	loader := &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
	if options.CacheSize > 0 {
		if cache, err := lru.New[string, schema.Document](options.CacheSize); err == nil {
			loader.cache = cache
		}
	}
	return loader
}

// Load fetches a document from the provided source and wraps it in a
// Document. Loaded documents are cached by source when a cache is
// configured, so processing several documents against one schema fetches it
// once.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schema loader: source is nil")
	}

	key := string(src.Kind()) + "|" + src.Location()
	if l.cache != nil {
		if doc, ok := l.cache.Get(key); ok {
			return doc, nil
		}
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if !l.allowHTTP {
			return schema.Document{}, errors.New("schema loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("schema loader: unsupported source kind")
	}
	if err != nil {
		return schema.Document{}, err
	}

	doc, err := schema.NewDocument(src, data)
	if err != nil {
		return schema.Document{}, err
	}
	if l.cache != nil {
		l.cache.Add(key, doc)
	}
	return doc, nil
}
