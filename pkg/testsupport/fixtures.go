// Package testsupport holds helpers shared by package tests: fixture and
// golden file access plus template output capture.
package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	pkgdocument "github.com/goliatone/go-toc/pkg/document"
	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

// LoadDocument reads a markup fixture into a document.Document backed by a
// file source.
func LoadDocument(t *testing.T, path string) pkgdocument.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, so
// setup code outside a test can share fixtures.
func LoadDocumentFromPath(path string) (pkgdocument.Document, error) {
	if path == "" {
		return pkgdocument.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgdocument.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgdocument.NewDocument(pkgdocument.SourceFromFile(path), data)
	if err != nil {
		return pkgdocument.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CompareMenu diffs two menu trees, ignoring parent links.
func CompareMenu(want, got *pkgtoc.MenuItem) string {
	return cmp.Diff(want, got, cmpopts.IgnoreUnexported(pkgtoc.MenuItem{}))
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
