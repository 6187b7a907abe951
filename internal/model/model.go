// Package model defines core data structures for namecheck.
package model

// NamingConvention is a casing rule an identifier is expected to follow.
type NamingConvention int

const (
	LowerCamelCase NamingConvention = iota
	UpperCamelCase
	UnderscoreLowerCamelCase
	InterfacePrefixUpperCamelCase
)

func (c NamingConvention) String() string {
	switch c {
	case LowerCamelCase:
		return "lowerCamelCase"
	case UpperCamelCase:
		return "UpperCamelCase"
	case UnderscoreLowerCamelCase:
		return "_lowerCamelCase"
	case InterfacePrefixUpperCamelCase:
		return "IUpperCamelCase"
	}
	return "unknown"
}

// DeclarationKind is the syntactic kind of a declaration node.
type DeclarationKind int

const (
	Other DeclarationKind = iota
	Property
	Method
	Class
	Struct
	Interface
	Field
	Local
	Parameter
)

// Modifiers is a set of declaration modifier flags.
type Modifiers uint16

const (
	Public Modifiers = 1 << iota
	Internal
	Protected
	Private
	Static
	Readonly
	Const
)

// Has reports whether any of the flags in m are set.
func (s Modifiers) Has(m Modifiers) bool {
	return s&m != 0
}

// Location identifies an identifier token in a source file.
// Line and Column are 1-based; Column counts bytes.
type Location struct {
	File      string
	Line      int
	Column    int
	StartByte int
	EndByte   int
}

// Identifier is a value copy of an identifier token.
type Identifier struct {
	Text     string // raw source text, including any @ or \u escapes
	Value    string // text with escaping removed
	Verbatim bool   // written with the @ prefix
	Leading  string
	Trailing string
	Location Location
}

// WithValue returns a new identifier carrying value as both its raw text and
// value text. Trivia and location are kept.
func (id Identifier) WithValue(value string) Identifier {
	return Identifier{
		Text:     value,
		Value:    value,
		Leading:  id.Leading,
		Trailing: id.Trailing,
		Location: id.Location,
	}
}

// Finding is one identifier whose text does not match its convention.
type Finding struct {
	Location  Location
	Kind      string
	Original  string
	Corrected string
}

// FileReport holds the findings for a single source file.
type FileReport struct {
	Path     string
	Findings []Finding
}

// Report is the complete result of checking a tree of source files.
type Report struct {
	Root    string
	Checked int // number of files checked, including those without findings
	Files   []FileReport
}

// Count returns the total number of findings in the report.
func (r *Report) Count() int {
	n := 0
	for i := range r.Files {
		n += len(r.Files[i].Findings)
	}
	return n
}
