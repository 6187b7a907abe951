// Package fix applies naming-convention findings to source files.
package fix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/phobologic/namecheck/internal/check"
	"github.com/phobologic/namecheck/internal/convention"
	"github.com/phobologic/namecheck/internal/lang"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/transform"
)

var (
	// ErrNoFindings is returned when there is nothing to apply.
	ErrNoFindings = errors.New("no applicable findings")
	// ErrStaleFinding marks a finding whose original text is no longer at its location.
	ErrStaleFinding = errors.New("source no longer matches finding")
	// ErrNoIdentifier is returned when no governed identifier is at a position.
	ErrNoIdentifier = errors.New("no governed identifier at position")
	// ErrConforming is returned when the identifier at a position already follows its convention.
	ErrConforming = errors.New("identifier already follows naming conventions")
)

// Skipped records a finding that was not applied.
type Skipped struct {
	Finding model.Finding
	Err     error
}

// Result holds the rewritten source and the outcome per finding.
type Result struct {
	Source  []byte
	Applied []model.Finding
	Skipped []Skipped
}

// Apply replaces the original text of every finding with its corrected text.
// Findings are applied last offset first so earlier offsets stay valid.
// Stale and overlapping findings are skipped.
func Apply(source []byte, findings []model.Finding) (*Result, error) {
	result := &Result{Source: source}
	if len(findings) == 0 {
		return result, ErrNoFindings
	}

	ordered := make([]model.Finding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Location.StartByte > ordered[j].Location.StartByte
	})

	out := bytes.Clone(source)
	limit := len(source) + 1
	for _, f := range ordered {
		start, end := f.Location.StartByte, f.Location.EndByte
		switch {
		case start < 0 || end > len(source) || start > end:
			result.Skipped = append(result.Skipped, Skipped{f, fmt.Errorf("%w: span %d-%d out of range", ErrStaleFinding, start, end)})
			continue
		case end > limit:
			result.Skipped = append(result.Skipped, Skipped{f, fmt.Errorf("overlaps a later edit at byte %d", limit)})
			continue
		case string(source[start:end]) != f.Original:
			result.Skipped = append(result.Skipped, Skipped{f, fmt.Errorf("%w: found %q, want %q", ErrStaleFinding, source[start:end], f.Original)})
			continue
		}
		out = append(out[:start:start], append([]byte(f.Corrected), out[end:]...)...)
		limit = start
		result.Applied = append(result.Applied, f)
	}

	// Report applied findings in source order.
	for i, j := 0, len(result.Applied)-1; i < j; i, j = i+1, j-1 {
		result.Applied[i], result.Applied[j] = result.Applied[j], result.Applied[i]
	}

	result.Source = out
	if len(result.Applied) == 0 {
		return result, ErrNoFindings
	}
	return result, nil
}

// RenameAt finds the identifier token at offset, walks up to the declaration
// that governs it, and returns the finding renaming it to that declaration's
// convention.
func RenameAt(ctx context.Context, l *lang.Language, source []byte, path string, offset int) (model.Finding, error) {
	tree, err := l.NewParser().ParseCtx(ctx, nil, source)
	if err != nil {
		return model.Finding{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	tok := l.IdentifierAt(tree.RootNode(), offset)
	if tok == nil || tok.Parent() == nil {
		return model.Finding{}, ErrNoIdentifier
	}

	decl, conv, ok := check.Governing(l.Wrap(tok.Parent(), source, path))
	if !ok {
		return model.Finding{}, ErrNoIdentifier
	}

	for _, id := range decl.Identifiers() {
		if int(tok.StartByte()) < id.Location.StartByte || int(tok.EndByte()) > id.Location.EndByte {
			continue
		}
		fixed, err := transform.Apply(id, conv)
		if err != nil {
			return model.Finding{}, err
		}
		f := model.Finding{
			Location:  id.Location,
			Kind:      convention.Label(decl.Kind()),
			Original:  id.Text,
			Corrected: fixed.Text,
		}
		if f.Corrected == f.Original {
			return f, ErrConforming
		}
		return f, nil
	}
	return model.Finding{}, ErrNoIdentifier
}

// Offset converts a 1-based line and byte column into a byte offset.
func Offset(source []byte, line, col int) (int, error) {
	if line < 1 || col < 1 {
		return 0, fmt.Errorf("position %d:%d: line and column start at 1", line, col)
	}
	start := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(source[start:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("position %d:%d: file has %d lines", line, col, l)
		}
		start += i + 1
	}
	end := len(source)
	if i := bytes.IndexByte(source[start:], '\n'); i >= 0 {
		end = start + i
	}
	if start+col-1 >= end {
		return 0, fmt.Errorf("position %d:%d: line has %d bytes", line, col, end-start)
	}
	return start + col - 1, nil
}
