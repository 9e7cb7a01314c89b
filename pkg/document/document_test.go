package document_test

import (
	"strings"
	"testing"

	pkgdocument "github.com/goliatone/go-toc/pkg/document"
)

func TestNewDocumentInfersFormat(t *testing.T) {
	cases := []struct {
		location string
		want     pkgdocument.Format
	}{
		{"notes.md", pkgdocument.FormatMarkdown},
		{"notes.MARKDOWN", pkgdocument.FormatMarkdown},
		{"page.html", pkgdocument.FormatHTML},
		{"page", pkgdocument.FormatHTML},
		{"https://example.com/readme.md?raw=1", pkgdocument.FormatMarkdown},
	}

	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			if got := pkgdocument.FormatFromPath(tc.location); got != tc.want {
				t.Fatalf("FormatFromPath(%q) = %q, want %q", tc.location, got, tc.want)
			}
		})
	}
}

func TestDocumentRawIsCopied(t *testing.T) {
	raw := []byte("<h1>A</h1>")
	doc := pkgdocument.MustNewDocument(pkgdocument.SourceFromFile("a.html"), raw)

	raw[1] = 'x'
	if got := string(doc.Raw()); got != "<h1>A</h1>" {
		t.Fatalf("document payload mutated: %q", got)
	}
	if doc.Location() != "a.html" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if doc.Source().Kind() != pkgdocument.SourceKindFile {
		t.Fatalf("unexpected kind %q", doc.Source().Kind())
	}
}

func TestDocumentHTMLRendersMarkdown(t *testing.T) {
	doc := pkgdocument.MustNewDocument(pkgdocument.SourceFromStdin("readme.md"), []byte("# Title\n\n## Section\n\nbody\n"))

	html := doc.HTML()
	if !strings.Contains(html, "<h1>Title</h1>") {
		t.Fatalf("expected h1 in output, got %q", html)
	}
	if !strings.Contains(html, "<h2>Section</h2>") {
		t.Fatalf("expected h2 in output, got %q", html)
	}
}

func TestDocumentHTMLPassesThroughHTML(t *testing.T) {
	doc := pkgdocument.MustNewDocument(pkgdocument.SourceFromStdin(""), []byte("# not markdown"))
	if got := doc.HTML(); got != "# not markdown" {
		t.Fatalf("HTML() = %q", got)
	}
	if loc := doc.Location(); loc != "-" {
		t.Fatalf("stdin location = %q, want -", loc)
	}
}

func TestNewDocumentErrors(t *testing.T) {
	if _, err := pkgdocument.NewDocument(nil, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := pkgdocument.NewDocumentWithFormat(pkgdocument.SourceFromFile("a"), nil, "rst"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := pkgdocument.SourceFromURL("::bad"); err == nil {
		t.Fatal("expected error for invalid URL")
	}
	if _, err := pkgdocument.SourceFromURL(""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
