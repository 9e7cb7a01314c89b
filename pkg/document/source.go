package document

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// fileSource identifies on-disk documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL validates raw and returns a Source for it.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("document: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("document: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}

// stdinSource reads from standard input. The name hint decides the format.
type stdinSource struct {
	hint string
}

func (s stdinSource) Location() string {
	if s.hint != "" {
		return s.hint
	}
	return "-"
}

func (s stdinSource) Kind() SourceKind {
	return SourceKindStdin
}

// SourceFromStdin returns a Source reading standard input. nameHint, when set,
// stands in for a file name when inferring the format ("notes.md").
func SourceFromStdin(nameHint string) Source {
	return stdinSource{hint: nameHint}
}
