package lang

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/phobologic/namecheck/internal/check"
	"github.com/phobologic/namecheck/internal/model"
)

func init() {
	Languages["csharp"] = &Language{
		Name:         "csharp",
		Extensions:   []string{".cs"},
		lang:         csharp.GetLanguage(),
		Wrap:         csharpWrap,
		IsIdentifier: csharpIsIdentifier,
	}
}

var csharpKinds = map[string]model.DeclarationKind{
	"property_declaration":        model.Property,
	"method_declaration":          model.Method,
	"class_declaration":           model.Class,
	"struct_declaration":          model.Struct,
	"interface_declaration":       model.Interface,
	"field_declaration":           model.Field,
	"local_declaration_statement": model.Local,
	"parameter":                   model.Parameter,
}

var csharpModifiers = map[string]model.Modifiers{
	"public":    model.Public,
	"internal":  model.Internal,
	"protected": model.Protected,
	"private":   model.Private,
	"static":    model.Static,
	"readonly":  model.Readonly,
	"const":     model.Const,
}

// Children that end the part of a declaration holding its name.
var csharpNameStops = map[string]struct{}{
	"parameter_list":          {},
	"type_parameter_list":     {},
	"accessor_list":           {},
	"arrow_expression_clause": {},
	"equals_value_clause":     {},
	"base_list":               {},
	"declaration_list":        {},
	"block":                   {},
}

type csharpNode struct {
	node   *sitter.Node
	source []byte
	path   string
}

func csharpWrap(node *sitter.Node, source []byte, path string) check.Node {
	return csharpNode{node: node, source: source, path: path}
}

func csharpIsIdentifier(node *sitter.Node) bool {
	return node.Type() == "identifier"
}

func (n csharpNode) Kind() model.DeclarationKind {
	return csharpKinds[n.node.Type()]
}

func (n csharpNode) Modifiers() model.Modifiers {
	var mods model.Modifiers
	for i := 0; i < int(n.node.ChildCount()); i++ {
		child := n.node.Child(i)
		if child.Type() != "modifier" {
			continue
		}
		mods |= csharpModifiers[strings.TrimSpace(NodeText(child, n.source))]
	}
	return mods
}

func (n csharpNode) Parent() check.Node {
	p := n.node.Parent()
	if p == nil {
		return nil
	}
	return csharpNode{node: p, source: n.source, path: n.path}
}

func (n csharpNode) Identifiers() []model.Identifier {
	switch n.Kind() {
	case model.Other:
		return nil
	case model.Field, model.Local:
		var ids []model.Identifier
		for _, decl := range childrenOfType(n.node, "variable_declaration") {
			for _, v := range childrenOfType(decl, "variable_declarator") {
				if name := csharpName(v); name != nil {
					ids = append(ids, n.identifier(name))
				}
			}
		}
		return ids
	default:
		if name := csharpName(n.node); name != nil {
			return []model.Identifier{n.identifier(name)}
		}
		return nil
	}
}

// csharpName returns the identifier naming a declaration or declarator. It
// prefers the grammar's name field and otherwise takes the last direct
// identifier child before the declaration's parameters, accessors or body,
// which skips a leading type name.
func csharpName(node *sitter.Node) *sitter.Node {
	if name := node.ChildByFieldName("name"); name != nil && csharpIsIdentifier(name) {
		return name
	}
	var last *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if _, stop := csharpNameStops[child.Type()]; stop {
			break
		}
		if csharpIsIdentifier(child) {
			last = child
		}
	}
	return last
}

func (n csharpNode) identifier(tok *sitter.Node) model.Identifier {
	start, end := escapedSpan(n.source, int(tok.StartByte()), int(tok.EndByte()))
	text := string(n.source[start:end])
	pos := tok.StartPoint()
	pos.Column -= uint32(int(tok.StartByte()) - start)
	return model.Identifier{
		Text:     text,
		Value:    decodeEscapes(strings.TrimPrefix(text, "@")),
		Verbatim: strings.HasPrefix(text, "@"),
		Leading:  leadingSpace(n.source, start),
		Trailing: trailingSpace(n.source, end),
		Location: model.Location{
			File:      n.path,
			Line:      int(pos.Row) + 1,
			Column:    int(pos.Column) + 1,
			StartByte: start,
			EndByte:   end,
		},
	}
}

// escapedSpan widens the identifier token at source[start:end] over adjoining
// identifier characters and \u or \U escapes. The grammar ends an identifier
// token at an escape, so Cl\u0061ss arrives as Cl.
func escapedSpan(source []byte, start, end int) (int, int) {
	for start > 0 {
		if w := escapeBefore(source, start); w > 0 {
			start -= w
			continue
		}
		r, size := utf8.DecodeLastRune(source[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	for end < len(source) {
		if w := escapeAt(source, end); w > 0 {
			end += w
			continue
		}
		r, size := utf8.DecodeRune(source[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	return start, end
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// escapeAt returns the length of a \uXXXX or \UXXXXXXXX escape at source[i:],
// or 0.
func escapeAt(source []byte, i int) int {
	if i+1 >= len(source) || source[i] != '\\' {
		return 0
	}
	width := 0
	switch source[i+1] {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0
	}
	if i+2+width > len(source) || !isHex(source[i+2:i+2+width]) {
		return 0
	}
	return 2 + width
}

// escapeBefore returns the length of an escape ending at source[i], or 0.
func escapeBefore(source []byte, i int) int {
	for _, w := range []int{6, 10} {
		if i >= w && escapeAt(source, i-w) == w {
			return w
		}
	}
	return 0
}

func isHex(b []byte) bool {
	for _, c := range b {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func childrenOfType(node *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == typ {
			out = append(out, child)
		}
	}
	return out
}

// decodeEscapes resolves \uXXXX and \UXXXXXXXX escapes in an identifier.
// Malformed escapes are kept as written.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			width := 0
			switch s[i+1] {
			case 'u':
				width = 4
			case 'U':
				width = 8
			}
			if width > 0 && i+2+width <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+2+width], 16, 32); err == nil && utf8.ValidRune(rune(v)) {
					b.WriteRune(rune(v))
					i += 2 + width
					continue
				}
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func leadingSpace(source []byte, start int) string {
	i := start
	for i > 0 && (source[i-1] == ' ' || source[i-1] == '\t') {
		i--
	}
	return string(source[i:start])
}

func trailingSpace(source []byte, end int) string {
	i := end
	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	return string(source[end:i])
}
