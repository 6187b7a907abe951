// Package convention maps declaration kinds to the naming convention their
// identifiers must follow.
package convention

import "github.com/phobologic/namecheck/internal/model"

// For returns the convention governing a declaration of the given kind.
// ok is false for kinds that are not governed.
func For(kind model.DeclarationKind, mods model.Modifiers) (conv model.NamingConvention, ok bool) {
	switch kind {
	case model.Property, model.Method, model.Class, model.Struct:
		return model.UpperCamelCase, true
	case model.Local, model.Parameter:
		return model.LowerCamelCase, true
	case model.Interface:
		return model.InterfacePrefixUpperCamelCase, true
	case model.Field:
		if mods.Has(model.Internal | model.Protected | model.Public) {
			return model.UpperCamelCase, true
		}
		return model.UnderscoreLowerCamelCase, true
	default:
		return 0, false
	}
}

var labels = map[model.DeclarationKind]string{
	model.Property:  "property",
	model.Method:    "method",
	model.Class:     "class",
	model.Struct:    "struct",
	model.Local:     "local",
	model.Parameter: "parameter",
	model.Interface: "interface",
	model.Field:     "field",
}

// Label returns the human-readable name of a declaration kind, or "" for
// ungoverned kinds.
func Label(kind model.DeclarationKind) string {
	return labels[kind]
}

// ParseKind is the inverse of Label.
func ParseKind(label string) (model.DeclarationKind, bool) {
	for k, l := range labels {
		if l == label {
			return k, true
		}
	}
	return model.Other, false
}

// Labels returns every governed kind label in declaration-kind order.
func Labels() []string {
	out := make([]string, 0, len(labels))
	for k := model.Property; k <= model.Parameter; k++ {
		out = append(out, labels[k])
	}
	return out
}
