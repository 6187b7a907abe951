// Package check compares the identifiers of declaration nodes against their
// naming convention and reports mismatches.
package check

import (
	"fmt"
	"iter"

	"github.com/phobologic/namecheck/internal/convention"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/transform"
)

// Node is the view of a syntax tree node the checker needs.
// Parent must return a nil interface at the root.
type Node interface {
	Kind() model.DeclarationKind
	Modifiers() model.Modifiers
	// Identifiers returns the identifier tokens the node declares, in
	// source order. Multi-binding declarations return one per binding.
	Identifiers() []model.Identifier
	Parent() Node
}

// Check yields a finding for every identifier of node that does not follow
// the convention of its declaration kind. The sequence is empty for
// ungoverned kinds.
func Check(node Node) iter.Seq[model.Finding] {
	return func(yield func(model.Finding) bool) {
		conv, ok := convention.For(node.Kind(), node.Modifiers())
		if !ok {
			return
		}
		label := convention.Label(node.Kind())
		for _, id := range node.Identifiers() {
			fixed, err := transform.Apply(id, conv)
			if err != nil {
				// convention.For only yields enumerated conventions.
				panic(err)
			}
			if fixed.Text == id.Text {
				continue
			}
			f := model.Finding{
				Location:  id.Location,
				Kind:      label,
				Original:  id.Text,
				Corrected: fixed.Text,
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Findings collects Check into a slice.
func Findings(node Node) []model.Finding {
	var out []model.Finding
	for f := range Check(node) {
		out = append(out, f)
	}
	return out
}

// Governing walks from node up through its parents and returns the first
// node that has a naming convention.
func Governing(node Node) (Node, model.NamingConvention, bool) {
	for n := node; n != nil; n = n.Parent() {
		if conv, ok := convention.For(n.Kind(), n.Modifiers()); ok {
			return n, conv, true
		}
	}
	return nil, 0, false
}

// Message formats the user-facing diagnostic text for f.
func Message(f model.Finding) string {
	return fmt.Sprintf("The %s %s does not follow naming conventions. Should be %s.", f.Kind, f.Original, f.Corrected)
}
