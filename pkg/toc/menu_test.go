package toc_test

import (
	"testing"

	pkgtoc "github.com/goliatone/go-toc/pkg/toc"
)

func TestMenuItem_WalkSkipsPrunedBranches(t *testing.T) {
	menu, err := pkgtoc.NewGenerator().Menu("<h1>A</h1><h2>A1</h2><h1>B</h1><h2>B1</h2>", 1, 6)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}

	var visited []string
	menu.Walk(func(item *pkgtoc.MenuItem) bool {
		visited = append(visited, item.Label)
		return item.Label != "A"
	})

	want := []string{"A", "B", "B1"}
	if len(visited) != len(want) {
		t.Fatalf("walk mismatch: want %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("walk mismatch: want %v, got %v", want, visited)
		}
	}
}

func TestMenuItem_NilSafe(t *testing.T) {
	var item *pkgtoc.MenuItem
	if item.Len() != 0 || item.HasChildren() || item.IsRoot() || item.Parent() != nil {
		t.Fatalf("nil item should behave as empty")
	}
	if got := item.Flatten(); len(got) != 0 {
		t.Fatalf("expected empty flatten, got %d", len(got))
	}
}
