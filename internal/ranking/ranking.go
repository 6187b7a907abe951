// Package ranking narrows a report to the files and findings of interest.
package ranking

import (
	"sort"
	"strings"

	"github.com/phobologic/namecheck/internal/model"
)

// SelectFiles returns a new Report with only the maxFiles files that have
// the most findings, ties broken by path. Files keep their path order.
// If maxFiles is <= 0 or >= len(files), the report is returned unchanged.
func SelectFiles(r *model.Report, maxFiles int) *model.Report {
	if maxFiles <= 0 || maxFiles >= len(r.Files) {
		return r
	}

	order := make([]int, len(r.Files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa, fb := &r.Files[order[a]], &r.Files[order[b]]
		if len(fa.Findings) != len(fb.Findings) {
			return len(fa.Findings) > len(fb.Findings)
		}
		return fa.Path < fb.Path
	})

	keep := order[:maxFiles]
	sort.Ints(keep)

	selected := make([]model.FileReport, 0, maxFiles)
	for _, i := range keep {
		selected = append(selected, r.Files[i])
	}
	return &model.Report{Root: r.Root, Checked: r.Checked, Files: selected}
}

// FilterByKind returns a new Report containing only findings whose kind label
// is listed in kinds. Files left without findings are dropped.
// An empty kinds list returns the report unchanged.
func FilterByKind(r *model.Report, kinds []string) *model.Report {
	if len(kinds) == 0 {
		return r
	}
	wanted := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	out := &model.Report{Root: r.Root, Checked: r.Checked}
	for i := range r.Files {
		fr := &r.Files[i]
		var kept []model.Finding
		for _, f := range fr.Findings {
			if _, ok := wanted[f.Kind]; ok {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			out.Files = append(out.Files, model.FileReport{Path: fr.Path, Findings: kept})
		}
	}
	return out
}

// FilterByFile returns a new Report containing only files whose path contains
// substr (case-insensitive).
func FilterByFile(r *model.Report, substr string) *model.Report {
	if substr == "" {
		return r
	}
	lower := strings.ToLower(substr)

	out := &model.Report{Root: r.Root, Checked: r.Checked}
	for i := range r.Files {
		if strings.Contains(strings.ToLower(r.Files[i].Path), lower) {
			out.Files = append(out.Files, r.Files[i])
		}
	}
	return out
}

// DropEmpty returns a new Report without files that have no findings.
func DropEmpty(r *model.Report) *model.Report {
	out := &model.Report{Root: r.Root, Checked: r.Checked}
	for i := range r.Files {
		if len(r.Files[i].Findings) > 0 {
			out.Files = append(out.Files, r.Files[i])
		}
	}
	return out
}
