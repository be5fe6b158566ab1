package parser

import (
	"go/ast"
	"go/types"
)

// structFields lists the fields of a struct variant in declaration order.
// An embedded field is addressed by its type name, as in Go selectors.
func structFields(st *ast.StructType) []FieldInfo {
	if st.Fields == nil {
		return nil
	}
	var fields []FieldInfo
	for _, f := range st.Fields.List {
		typeStr := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			fields = append(fields, FieldInfo{
				Name:     embeddedName(f.Type),
				TypeStr:  typeStr,
				Embedded: true,
			})
			continue
		}
		for _, name := range f.Names {
			fields = append(fields, FieldInfo{Name: name.Name, TypeStr: typeStr})
		}
	}
	return fields
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	case *ast.Ident:
		return e.Name
	default:
		return ""
	}
}
