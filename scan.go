package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/phobologic/namecheck/internal/cache"
	"github.com/phobologic/namecheck/internal/discover"
	"github.com/phobologic/namecheck/internal/lang"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/parse"
)

type parserPair struct {
	lang   *lang.Language
	parser *sitter.Parser
	query  *sitter.Query
}

// checkFilesConcurrent checks files on GOMAXPROCS workers and returns one
// report per readable, parseable file in the original order. fc may be nil.
func checkFilesConcurrent(ctx context.Context, root string, files []discover.FileEntry, fc *cache.Cache, logger *slog.Logger) ([]model.FileReport, error) {
	numWorkers := min(runtime.GOMAXPROCS(0), len(files))

	indexed := make([]model.FileReport, len(files))
	valid := make([]bool, len(files))
	work := make(chan int)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for i := range files {
			select {
			case work <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range numWorkers {
		g.Go(func() error {
			// Each goroutine gets its own parser
			parsers := make(map[string]*parserPair)

			for idx := range work {
				f := files[idx]
				pp, ok := parsers[f.Language]
				if !ok {
					l := lang.Languages[f.Language]
					q, err := l.GetDeclarationQuery()
					if err != nil {
						return fmt.Errorf("query for %s: %w", f.Language, err)
					}
					pp = &parserPair{lang: l, parser: l.NewParser(), query: q}
					parsers[f.Language] = pp
				}

				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					logger.Warn("file skipped", "path", f.Path, "err", err)
					continue
				}

				if fc != nil {
					if findings, hit := fc.Get(f.Path, source); hit {
						logger.Debug("cache hit", "path", f.Path)
						indexed[idx] = model.FileReport{Path: f.Path, Findings: findings}
						valid[idx] = true
						continue
					}
				}

				findings, err := parse.ExtractFindings(gctx, pp.lang, pp.parser, pp.query, source, f.Path)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					logger.Warn("file skipped", "path", f.Path, "err", err)
					continue
				}
				if fc != nil {
					fc.Put(f.Path, source, findings)
				}
				indexed[idx] = model.FileReport{Path: f.Path, Findings: findings}
				valid[idx] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Collect results in original order
	var reports []model.FileReport
	for i, v := range valid {
		if v {
			reports = append(reports, indexed[i])
		}
	}
	return reports, nil
}
