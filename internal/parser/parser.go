package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// DirectivePrefix starts every attribute site comment.
const DirectivePrefix = "//enumkeys:"

// Parser extracts type declarations and their attribute sites from Go
// packages.
type Parser interface {
	Parse(patterns ...string) ([]*PackageInfo, error)
}

type parserImpl struct {
	dir string
}

// New returns default parser resolving patterns against the working
// directory.
func New() Parser {
	return &parserImpl{}
}

// NewInDir returns a parser resolving patterns against dir.
func NewInDir(dir string) Parser {
	return &parserImpl{dir: dir}
}

func (p *parserImpl) Parse(patterns ...string) ([]*PackageInfo, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	// Syntax only: the package usually references code that does not exist
	// until generation has run, so type checking would fail.
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedSyntax,
		Dir: p.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages %q: %w", patterns, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("packages %q have errors", patterns)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %q", patterns)
	}

	infos := make([]*PackageInfo, 0, len(pkgs))
	for _, pkg := range pkgs {
		infos = append(infos, inspectPackage(pkg))
	}
	return infos, nil
}

func inspectPackage(pkg *packages.Package) *PackageInfo {
	info := &PackageInfo{
		Name:    pkg.Name,
		PkgPath: pkg.PkgPath,
	}
	if len(pkg.CompiledGoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.CompiledGoFiles[0])
	}

	methods := map[string][]MethodInfo{}
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					info.Types = append(info.Types, inspectType(pkg.Fset, ts, doc))
				}
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) != 1 {
					continue
				}
				recv, pointer := receiverName(d.Recv.List[0].Type)
				if recv == "" {
					continue
				}
				methods[recv] = append(methods[recv], MethodInfo{Name: d.Name.Name, Pointer: pointer})
			}
		}
	}

	for _, t := range info.Types {
		t.Methods = methods[t.Name]
	}
	return info
}

func inspectType(fset *token.FileSet, ts *ast.TypeSpec, doc *ast.CommentGroup) *TypeInfo {
	t := &TypeInfo{
		Name:    ts.Name.Name,
		Pos:     fset.Position(ts.Name.Pos()),
		Alias:   ts.Assign.IsValid(),
		Generic: ts.TypeParams != nil && len(ts.TypeParams.List) > 0,
		Sites:   collectSites(fset, doc),
	}

	switch typ := ts.Type.(type) {
	case *ast.InterfaceType:
		t.Kind = TypeKindInterface
		t.Markers = markerMethods(typ)
	case *ast.StructType:
		t.Kind = TypeKindStruct
		t.Fields = structFields(typ)
		t.Shape = ShapeNamed
		if len(t.Fields) == 0 {
			t.Shape = ShapeUnit
		}
	default:
		t.Kind = TypeKindOther
		t.Shape = ShapeUnnamed
		t.Fields = []FieldInfo{{TypeStr: types.ExprString(ts.Type)}}
	}
	return t
}

func collectSites(fset *token.FileSet, doc *ast.CommentGroup) []Site {
	if doc == nil {
		return nil
	}
	var sites []Site
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}
		rest := c.Text[len(DirectivePrefix):]
		name, args := rest, ""
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			name, args = rest[:i], rest[i+1:]
		}
		argsOffset := len(c.Text) - len(args)
		sites = append(sites, Site{
			Name: name,
			Args: args,
			Pos:  fset.Position(c.Pos() + token.Pos(argsOffset)),
		})
	}
	return sites
}

func markerMethods(it *ast.InterfaceType) []string {
	if it.Methods == nil {
		return nil
	}
	var markers []string
	for _, field := range it.Methods.List {
		fn, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		if fn.Params.NumFields() != 0 || fn.Results.NumFields() != 0 {
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				markers = append(markers, name.Name)
			}
		}
	}
	return markers
}

// receiverName returns the base type name of a method receiver.
func receiverName(expr ast.Expr) (name string, pointer bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, pointer
	case *ast.IndexExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return id.Name, pointer
		}
	case *ast.IndexListExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return id.Name, pointer
		}
	}
	return "", false
}
