// Package document wraps markup inputs and their origin, converting Markdown
// to HTML so the toc collaborators always see HTML.
package document

import (
	"errors"
	"path"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Source identifies where a document originated so loaders can operate on
// files, fs.FS entries, URLs or stdin without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindStdin SourceKind = "stdin"
)

// Format is the markup language of a document.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Document wraps raw markup and its origin.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document, inferring the format from the source
// location.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	return NewDocumentWithFormat(src, raw, FormatFromPath(src.Location()))
}

// NewDocumentWithFormat constructs a Document with an explicit format.
func NewDocumentWithFormat(src Source, raw []byte, format Format) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	switch format {
	case FormatHTML, FormatMarkdown:
	case "":
		format = FormatHTML
	default:
		return Document{}, errors.New("document: unsupported format " + string(format))
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: format}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload as loaded.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format reports the markup language of the payload.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// HTML returns the payload as HTML, rendering Markdown first when needed.
// Headings are left without ids; anchoring is the fixer's job.
func (d Document) HTML() string {
	if d.format != FormatMarkdown {
		return string(d.raw)
	}
	return MarkdownToHTML(d.raw)
}

// MarkdownToHTML renders CommonMark-ish Markdown with the common extensions.
func MarkdownToHTML(src []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(src)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.Render(doc, renderer))
}

// FormatFromPath infers the format from a file name or URL path.
func FormatFromPath(location string) Format {
	trimmed := location
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	switch strings.ToLower(path.Ext(trimmed)) {
	case ".md", ".markdown", ".mdown":
		return FormatMarkdown
	}
	return FormatHTML
}
