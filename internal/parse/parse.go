// Package parse extracts naming-convention findings from source files using
// tree-sitter.
package parse

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/namecheck/internal/check"
	"github.com/phobologic/namecheck/internal/lang"
	"github.com/phobologic/namecheck/internal/model"
)

// ExtractFindings parses a source file and checks every declaration matched
// by query. The parser must be created for l.
// filePath is used only for finding locations and should be the repo-relative path.
// Findings are ordered by position in the file.
func ExtractFindings(ctx context.Context, l *lang.Language, parser *sitter.Parser, query *sitter.Query, source []byte, filePath string) ([]model.Finding, error) {
	if len(source) == 0 {
		return nil, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var findings []model.Finding

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			if query.CaptureNameForId(c.Index) != "declaration" {
				continue
			}
			for f := range check.Check(l.Wrap(c.Node, source, filePath)) {
				findings = append(findings, f)
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Location.StartByte < findings[j].Location.StartByte
	})
	return findings, nil
}
