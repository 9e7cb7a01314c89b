package toc_test

import (
	"errors"
	"strings"
	"testing"

	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

func TestFixer_Fix(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		top    int
		depth  int
		want   string
	}{
		{
			name:   "adds ids to every heading",
			markup: "<h1>A</h1><h2>B</h2>",
			top:    1, depth: 6,
			want: `<h1 id="a">A</h1><h2 id="b">B</h2>`,
		},
		{
			name:   "keeps existing ids",
			markup: `<h1 id="custom">A</h1><h2>B</h2>`,
			top:    1, depth: 6,
			want: `<h1 id="custom">A</h1><h2 id="b">B</h2>`,
		},
		{
			name:   "respects the range",
			markup: "<h1>A</h1><h2>B</h2><h3>C</h3><h4>D</h4>",
			top:    2, depth: 3,
			want: `<h1>A</h1><h2 id="b">B</h2><h3 id="c">C</h3><h4>D</h4>`,
		},
		{
			name:   "deduplicates against reserved ids",
			markup: `<h2>Intro</h2><h2>Intro</h2><p id="intro-1">x</p>`,
			top:    1, depth: 6,
			want: `<h2 id="intro">Intro</h2><h2 id="intro-2">Intro</h2><p id="intro-1">x</p>`,
		},
		{
			name:   "prefers the title attribute",
			markup: `<h2 title="Short">A much longer heading</h2>`,
			top:    1, depth: 6,
			want: `<h2 title="Short" id="short">A much longer heading</h2>`,
		},
		{
			name:   "appends id after existing attributes",
			markup: `<h3 class="lead">Nested <em>text</em></h3>`,
			top:    1, depth: 6,
			want: `<h3 class="lead" id="nested-text">Nested <em>text</em></h3>`,
		},
		{
			name:   "replaces blank ids",
			markup: `<h2 id=" ">Blank</h2>`,
			top:    1, depth: 6,
			want: `<h2 id="blank">Blank</h2>`,
		},
	}

	fixer := pkgtoc.NewFixer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fixer.Fix(tc.markup, tc.top, tc.depth)
			if err != nil {
				t.Fatalf("fix: %v", err)
			}
			if got != tc.want {
				t.Fatalf("fix mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestFixer_FixIsIdempotent(t *testing.T) {
	fixer := pkgtoc.NewFixer()
	markup := "<h1>Title</h1><h2>Part</h2><h2>Part</h2><h3>Detail</h3>"

	first, err := fixer.Fix(markup, 1, 6)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := fixer.Fix(first, 1, 6)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if first != second {
		t.Fatalf("second pass changed markup\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFixer_FixFullDocument(t *testing.T) {
	markup := "<!DOCTYPE html><html><head><title>Doc</title></head><body><h1>Hello</h1></body></html>"

	got, err := pkgtoc.NewFixer().Fix(markup, 1, 6)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Fatalf("expected doctype to survive, got %q", got)
	}
	if !strings.Contains(got, `<title>Doc</title>`) || !strings.Contains(got, `<h1 id="hello">Hello</h1>`) {
		t.Fatalf("unexpected document output %q", got)
	}
}

func TestFixer_FixFragmentKeepsLeadingHeadContent(t *testing.T) {
	markup := "<style>h1{color:red}</style><h1>A</h1>"

	got, err := pkgtoc.NewFixer().Fix(markup, 1, 6)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	want := `<style>h1{color:red}</style><h1 id="a">A</h1>`
	if got != want {
		t.Fatalf("fix mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestFixer_FixBlankMarkup(t *testing.T) {
	got, err := pkgtoc.NewFixer().Fix("  \n", 1, 6)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if got != "  \n" {
		t.Fatalf("expected blank markup unchanged, got %q", got)
	}
}

func TestFixer_FixInvalidRange(t *testing.T) {
	_, err := pkgtoc.NewFixer().Fix("<h1>A</h1>", 3, 2)
	if !errors.Is(err, pkgtoc.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
