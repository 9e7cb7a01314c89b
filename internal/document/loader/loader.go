// Package loader implements pkg/document.Loader over files, fs.FS, HTTP and
// stdin.
package loader

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	pkgdocument "github.com/goliatone/go-toc/pkg/document"
)

// Loader implements pkgdocument.Loader by delegating to file, fs.FS, HTTP or
// stdin strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	stdin     io.Reader
}

var _ pkgdocument.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgdocument.LoaderOptions) *Loader {
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

	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		stdin:     stdin,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgdocument.Source) (pkgdocument.Document, error) {
	if src == nil {
		return pkgdocument.Document{}, errors.New("document loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgdocument.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgdocument.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgdocument.SourceKindURL:
		if !l.allowHTTP {
			return pkgdocument.Document{}, errors.New("document loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case pkgdocument.SourceKindStdin:
		data, err = loadStdin(ctx, l.stdin)
	default:
		err = errors.New("document loader: unsupported source kind")
	}
	if err != nil {
		return pkgdocument.Document{}, err
	}

	return pkgdocument.NewDocument(src, data)
}
