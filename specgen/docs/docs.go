// Package docs extracts Go doc comments from source and serves them as
// model property documentation. Types and fields are looked up by package
// path and name, so documentation survives the round trip through
// reflection as long as the documented packages are loadable from the
// working directory.
package docs

import (
	"fmt"
	"go/ast"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Provider holds doc comments indexed by type and field. It implements the
// model engine's DocProvider. A Provider is immutable after Load and safe
// for concurrent use.
type Provider struct {
	typeDocs  map[string]string // pkgPath.TypeName
	fieldDocs map[string]string // pkgPath.TypeName.Field
}

// Load parses the packages matching the given patterns (in the go/packages
// sense, e.g. "./..." or an import path) and indexes the doc comments of
// every struct type and field found.
func Load(patterns ...string) (*Provider, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no package patterns specified")
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	p := &Provider{
		typeDocs:  make(map[string]string),
		fieldDocs: make(map[string]string),
	}
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			p.indexFile(pkg.PkgPath, file)
		}
	}
	return p, nil
}

func (p *Provider) indexFile(pkgPath string, file *ast.File) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			key := pkgPath + "." + ts.Name.Name
			if doc := commentText(ts.Doc, gd.Doc); doc != "" {
				p.typeDocs[key] = doc
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			for _, field := range st.Fields.List {
				doc := commentText(field.Doc, field.Comment)
				if doc == "" {
					continue
				}
				for _, name := range field.Names {
					p.fieldDocs[key+"."+name.Name] = doc
				}
			}
		}
	}
}

// commentText returns the first non-empty comment group as trimmed text.
func commentText(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g == nil {
			continue
		}
		if text := strings.TrimSpace(g.Text()); text != "" {
			return text
		}
	}
	return ""
}

// TypeDoc returns the doc comment for a type, or "".
func (p *Provider) TypeDoc(t reflect.Type) string {
	return p.typeDocs[typeKey(t)]
}

// FieldDoc returns the doc comment for a field of owner, or "".
func (p *Provider) FieldDoc(owner reflect.Type, field string) string {
	return p.fieldDocs[typeKey(owner)+"."+field]
}

// typeKey maps a reflect type to its index key. Instantiated generic types
// share the doc comments of their base declaration.
func typeKey(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return t.PkgPath() + "." + name
}
