package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-toc/internal/document/loader"
	pkgdocument "github.com/goliatone/go-toc/pkg/document"
)

func TestLoaderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<h1>A</h1>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(pkgdocument.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgdocument.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.HTML() != "<h1>A</h1>" {
		t.Fatalf("unexpected payload %q", doc.HTML())
	}
	if doc.Format() != pkgdocument.FormatHTML {
		t.Fatalf("unexpected format %q", doc.Format())
	}
}

func TestLoaderFS(t *testing.T) {
	files := fstest.MapFS{
		"docs/intro.md": {Data: []byte("# Intro\n")},
	}

	l := loader.New(pkgdocument.NewLoaderOptions(pkgdocument.WithFileSystem(files)))
	doc, err := l.Load(context.Background(), pkgdocument.SourceFromFS("docs/intro.md"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != pkgdocument.FormatMarkdown {
		t.Fatalf("unexpected format %q", doc.Format())
	}
	if !strings.Contains(doc.HTML(), "<h1>Intro</h1>") {
		t.Fatalf("expected rendered markdown, got %q", doc.HTML())
	}
}

func TestLoaderFSWithoutFileSystem(t *testing.T) {
	l := loader.New(pkgdocument.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgdocument.SourceFromFS("a.html")); err == nil {
		t.Fatal("expected error when no fs is configured")
	}
}

func TestLoaderStdin(t *testing.T) {
	l := loader.New(pkgdocument.NewLoaderOptions(pkgdocument.WithStdin(strings.NewReader("<h2>B</h2>"))))
	doc, err := l.Load(context.Background(), pkgdocument.SourceFromStdin(""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.HTML() != "<h2>B</h2>" {
		t.Fatalf("unexpected payload %q", doc.HTML())
	}
}

func TestLoaderHTTPDisabledByDefault(t *testing.T) {
	src, err := pkgdocument.SourceFromURL("http://example.invalid/page.html")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	l := loader.New(pkgdocument.NewLoaderOptions())
	_, err = l.Load(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page.html":
			_, _ = w.Write([]byte("<h1>Remote</h1>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	l := loader.New(pkgdocument.NewLoaderOptions(pkgdocument.WithHTTPFallback(time.Second)))

	src, _ := pkgdocument.SourceFromURL(server.URL + "/page.html")
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.HTML() != "<h1>Remote</h1>" {
		t.Fatalf("unexpected payload %q", doc.HTML())
	}

	missing, _ := pkgdocument.SourceFromURL(server.URL + "/missing.html")
	if _, err := l.Load(context.Background(), missing); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(pkgdocument.NewLoaderOptions(pkgdocument.WithStdin(strings.NewReader("x"))))
	if _, err := l.Load(ctx, pkgdocument.SourceFromStdin("")); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoaderNilSource(t *testing.T) {
	l := loader.New(pkgdocument.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
