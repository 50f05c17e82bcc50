package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lmoreno/readmegen/pkg/profile"
	"github.com/lmoreno/readmegen/pkg/readme"
)

func TestMergeRender(t *testing.T) {
	base := map[string]any{
		"template": "minimal",
		"subtitle": "from file",
		"theme":    "tokyonight",
	}

	got := mergeRender(base, "professional", []string{"header", "repos"}, "", "table")

	want := map[string]any{
		"template": "professional",
		"subtitle": "from file",
		"theme":    "tokyonight",
		"sections": []string{"header", "repos"},
		"layout":   "table",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergeRender() mismatch (-want +got):\n%s", diff)
	}

	// The config map itself must stay untouched.
	if base["template"] != "minimal" || len(base) != 3 {
		t.Errorf("base mutated: %v", base)
	}
}

func TestMergeRenderEmptyFlags(t *testing.T) {
	got := mergeRender(nil, "", nil, "   ", "")
	if len(got) != 0 {
		t.Errorf("mergeRender() = %v, want empty map", got)
	}
}

func TestComposerWiresCollaborators(t *testing.T) {
	p := &profile.Profile{Username: "ana"}
	cfg := readme.ParseConfig(map[string]any{"sections": []any{"badges", "charts"}})

	doc := newComposer().Build(p, cfg)
	if doc.Markdown == "" {
		t.Fatal("composed document empty, collaborators not wired")
	}
	if len(doc.Assets) == 0 {
		t.Error("chart assets missing from composed document")
	}
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]string{"b": "2", "a": "1", "c": "3"})
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sortedKeys() mismatch (-want +got):\n%s", diff)
	}
}
