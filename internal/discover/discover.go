// Package discover finds checkable source files in a repository.
package discover

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/namecheck/internal/lang"
)

// FileEntry represents a discovered source file.
type FileEntry struct {
	Path     string // Relative to repo root
	Language string
}

var skipDirs = map[string]struct{}{
	"bin":          {},
	"obj":          {},
	"packages":     {},
	"node_modules": {},
	"TestResults":  {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	".vs":          {},
	".idea":        {},
}

// generatedSuffixes mark files emitted by designers and source generators.
var generatedSuffixes = []string{
	".designer.cs",
	".g.cs",
	".g.i.cs",
	".generated.cs",
}

// IsGenerated reports whether path names a tool-generated source file.
func IsGenerated(path string) bool {
	lower := strings.ToLower(filepath.Base(path))
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return lower == "assemblyinfo.cs"
}

// Files discovers checkable source files under root.
// exclude holds gitignore-style patterns matched against the root-relative path.
func Files(root string, exclude []string) ([]FileEntry, error) {
	var excluded *ignore.GitIgnore
	if len(exclude) > 0 {
		excluded = ignore.CompileIgnoreLines(exclude...)
	}
	gitFiles := gitLsFiles(root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadGitignore(root)
	}

	var results []FileEntry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if gitFiles != nil {
			if _, ok := gitFiles[rel]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if excluded != nil && excluded.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}

		langName := lang.ForExtension(filepath.Ext(name))
		if langName == "" || IsGenerated(rel) {
			return nil
		}

		results = append(results, FileEntry{Path: rel, Language: langName})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

func gitLsFiles(root string) map[string]struct{} {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[filepath.FromSlash(line)] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
