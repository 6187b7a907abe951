// Package lang provides a language registry mapping file extensions to
// tree-sitter languages, their embedded declaration queries and the adapters
// that expose parsed declarations to the checker.
package lang

import (
	"embed"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/namecheck/internal/check"
)

//go:embed queries/*.scm
var queryFS embed.FS

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language
	queryOnce  sync.Once
	query      *sitter.Query
	queryErr   error

	// Wrap adapts a tree-sitter node of this language to check.Node.
	// path is recorded in the locations of the node's identifiers.
	Wrap func(node *sitter.Node, source []byte, path string) check.Node

	// IsIdentifier reports whether node is an identifier token.
	IsIdentifier func(node *sitter.Node) bool
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// GetDeclarationQuery returns the compiled declaration query (safe to share
// across goroutines).
func (l *Language) GetDeclarationQuery() (*sitter.Query, error) {
	l.queryOnce.Do(func() {
		data, err := queryFS.ReadFile(fmt.Sprintf("queries/%s.scm", l.Name))
		if err != nil {
			l.queryErr = fmt.Errorf("reading query file: %w", err)
			return
		}
		q, err := sitter.NewQuery(data, l.lang)
		if err != nil {
			l.queryErr = fmt.Errorf("compiling query: %w", err)
			return
		}
		l.query = q
	})
	return l.query, l.queryErr
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[ext]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// NodeAt returns the deepest node of root whose byte range contains offset,
// or nil if offset is outside root.
func NodeAt(root *sitter.Node, offset int) *sitter.Node {
	if offset < int(root.StartByte()) || offset >= int(root.EndByte()) {
		return nil
	}
	current := root
	for {
		var next *sitter.Node
		for i := 0; i < int(current.ChildCount()); i++ {
			child := current.Child(i)
			if int(child.StartByte()) <= offset && offset < int(child.EndByte()) {
				next = child
				break
			}
		}
		if next == nil {
			return current
		}
		current = next
	}
}

// IdentifierAt returns the identifier token at offset, or nil.
func (l *Language) IdentifierAt(root *sitter.Node, offset int) *sitter.Node {
	n := NodeAt(root, offset)
	if n == nil || !l.IsIdentifier(n) {
		return nil
	}
	return n
}
