package schema

import (
	"reflect"
	"strings"
)

// IDFor computes the unique id for a type. It is pure and deterministic:
// the same type always yields the same id, and distinct instantiations of
// the same generic shape yield distinct ids.
//
// Pointers are dereferenced first. A non-generic named type's id is its
// short (unqualified) name. A generic instantiation, whose reflected name
// carries a bracketed argument list (e.g. "Paged[example.com/shop.Order]"),
// drops the bracket marker from the short name and appends the recursively
// computed argument ids in braces: "Paged{Order}". Unnamed types fall back
// to a sanitized rendering of the full type string so that ids for opaque
// types (maps, anonymous structs) stay deterministic.
func IDFor(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return sanitizeTypeString(t.String())
	}
	return idFromName(name)
}

// idFromName computes an id from a reflected type name, which is either a
// plain short name or "Base[arg1,arg2,...]" for generic instantiations.
func idFromName(name string) string {
	open := strings.IndexByte(name, '[')
	if open < 0 {
		return name
	}
	base := name[:open]
	args := splitTypeArgs(name[open+1 : len(name)-1])
	ids := make([]string, len(args))
	for i, arg := range args {
		ids[i] = idFromQualified(arg)
	}
	return base + "{" + strings.Join(ids, ",") + "}"
}

// idFromQualified computes an id from one package-qualified type argument,
// e.g. "example.com/shop.Order", "int", or a nested instantiation
// "example.com/shop.Paged[example.com/shop.Order]".
func idFromQualified(arg string) string {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(arg, "*")
	if arg == "" {
		return ""
	}
	// Unnamed composites ([]T, map[K]V, struct{...}) have no short name.
	if !isIdentStart(arg[0]) {
		return sanitizeTypeString(arg)
	}
	if open := strings.IndexByte(arg, '['); open >= 0 {
		inner := splitTypeArgs(arg[open+1 : len(arg)-1])
		ids := make([]string, len(inner))
		for i, a := range inner {
			ids[i] = idFromQualified(a)
		}
		return shortName(arg[:open]) + "{" + strings.Join(ids, ",") + "}"
	}
	return shortName(arg)
}

// shortName strips the package qualifier from a reflected type name.
// Type names cannot contain '.', so the last dot separates the package.
func shortName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// splitTypeArgs splits a bracketed argument list on top-level commas.
func splitTypeArgs(s string) []string {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	args = append(args, s[start:])
	return args
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// sanitizeTypeString rewrites a reflected type string into a stable
// identifier for types that have no short name.
func sanitizeTypeString(s string) string {
	r := strings.NewReplacer(
		".", "_",
		"/", "_",
		"[", "_",
		"]", "",
		"{", "_",
		"}", "",
		",", "_",
		";", "_",
		" ", "",
		"*", "Ptr",
	)
	return r.Replace(s)
}
