package template_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-toc/pkg/extension"
	"github.com/goliatone/go-toc/pkg/render/template"
)

type namedExtension string

func (n namedExtension) Name() string {
	return string(n)
}

func (n namedExtension) Filters() []template.Filter {
	return nil
}

func (n namedExtension) Functions() []template.Function {
	return nil
}

func TestRegistry(t *testing.T) {
	reg := template.NewRegistry()
	reg.MustRegister(extension.New())
	reg.MustRegister(namedExtension("alpha"))

	if err := reg.Register(namedExtension("toc")); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(namedExtension(" ")); err == nil {
		t.Fatal("expected error for blank name")
	}

	if diff := cmp.Diff([]string{"alpha", "toc"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	replaced, err := reg.Replace(namedExtension("toc"))
	if err != nil || !replaced {
		t.Fatalf("replace = %v, %v", replaced, err)
	}
	got, err := reg.Get("toc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got.(namedExtension); !ok {
		t.Fatalf("expected replaced extension, got %T", got)
	}

	var order []string
	for _, ext := range reg.Extensions() {
		order = append(order, ext.Name())
	}
	if diff := cmp.Diff([]string{"toc", "alpha"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if reg.Has("missing") {
		t.Fatal("unexpected extension")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatal("expected not found error")
	}
}
