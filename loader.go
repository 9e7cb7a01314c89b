package toc

import (
	"context"

	internalloader "github.com/goliatone/go-toc/internal/document/loader"
	pkgdocument "github.com/goliatone/go-toc/pkg/document"
)

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgdocument.LoaderOption) pkgdocument.Loader {
	cfg := pkgdocument.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// LoadHTML loads src and returns it as HTML, rendering Markdown sources.
func LoadHTML(ctx context.Context, src pkgdocument.Source, options ...pkgdocument.LoaderOption) (string, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return "", err
	}
	return doc.HTML(), nil
}
