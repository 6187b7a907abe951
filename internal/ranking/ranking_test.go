package ranking

import (
	"testing"

	"github.com/phobologic/namecheck/internal/model"
)

func finding(kind, original string) model.Finding {
	return model.Finding{Kind: kind, Original: original, Corrected: original + "X"}
}

func makeReport() *model.Report {
	return &model.Report{
		Root: "test",
		Files: []model.FileReport{
			{Path: "A.cs", Findings: []model.Finding{finding("field", "a")}},
			{Path: "Lib/B.cs", Findings: []model.Finding{finding("local", "b"), finding("field", "c"), finding("method", "d")}},
			{Path: "Lib/C.cs", Findings: []model.Finding{finding("local", "e"), finding("local", "f")}},
			{Path: "D.cs"},
		},
	}
}

func paths(r *model.Report) []string {
	out := make([]string, len(r.Files))
	for i := range r.Files {
		out[i] = r.Files[i].Path
	}
	return out
}

func TestSelectFilesAll(t *testing.T) {
	t.Parallel()

	r := makeReport()
	if got := SelectFiles(r, 0); got != r {
		t.Error("maxFiles=0 should return original")
	}
	if got := SelectFiles(r, 5); got != r {
		t.Error("maxFiles > len should return original")
	}
}

func TestSelectFilesTopN(t *testing.T) {
	t.Parallel()

	got := SelectFiles(makeReport(), 2)
	p := paths(got)
	if len(p) != 2 || p[0] != "Lib/B.cs" || p[1] != "Lib/C.cs" {
		t.Errorf("SelectFiles(2) = %v, want [Lib/B.cs Lib/C.cs]", p)
	}
	if got.Root != "test" {
		t.Errorf("root = %q, want test", got.Root)
	}
}

func TestSelectFilesKeepsPathOrder(t *testing.T) {
	t.Parallel()

	got := SelectFiles(makeReport(), 3)
	p := paths(got)
	want := []string{"A.cs", "Lib/B.cs", "Lib/C.cs"}
	if len(p) != len(want) {
		t.Fatalf("SelectFiles(3) = %v, want %v", p, want)
	}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, p[i], want[i])
		}
	}
}

func TestFilterByKind(t *testing.T) {
	t.Parallel()

	got := FilterByKind(makeReport(), []string{"field", " Method "})
	p := paths(got)
	if len(p) != 2 || p[0] != "A.cs" || p[1] != "Lib/B.cs" {
		t.Fatalf("FilterByKind = %v", p)
	}
	if n := got.Count(); n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	r := makeReport()
	if FilterByKind(r, nil) != r {
		t.Error("empty kinds should return original")
	}
}

func TestFilterByFile(t *testing.T) {
	t.Parallel()

	got := FilterByFile(makeReport(), "lib/")
	if p := paths(got); len(p) != 2 {
		t.Errorf("FilterByFile(lib/) = %v, want 2 files", p)
	}
	if got := FilterByFile(makeReport(), "nomatch"); len(got.Files) != 0 {
		t.Errorf("expected no files, got %v", paths(got))
	}
}

func TestDropEmpty(t *testing.T) {
	t.Parallel()

	got := DropEmpty(makeReport())
	if len(got.Files) != 3 {
		t.Errorf("DropEmpty kept %v", paths(got))
	}
}
