package parser

import "go/token"

// PackageInfo holds the named type declarations of one package.
type PackageInfo struct {
	Name    string
	PkgPath string
	Dir     string
	Types   []*TypeInfo
}

// Lookup returns the type declared as name, or nil.
func (p *PackageInfo) Lookup(name string) *TypeInfo {
	for _, t := range p.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TypeInfo is one named type declaration in source order.
type TypeInfo struct {
	Name    string
	Pos     token.Position
	Kind    TypeKind
	Alias   bool
	Generic bool
	// Markers lists the unexported, parameterless, result-less methods of an
	// interface type.
	Markers []string
	Shape   Shape
	Fields  []FieldInfo
	Methods []MethodInfo
	Sites   []Site
}

// HasMethod reports whether the type declares name and with which receiver.
func (t *TypeInfo) HasMethod(name string) (pointer bool, ok bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m.Pointer, true
		}
	}
	return false, false
}

// Field returns the field called name, or nil.
func (t *TypeInfo) Field(name string) *FieldInfo {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// FieldInfo is one field of a variant. Unnamed shapes have a single field
// with an empty Name.
type FieldInfo struct {
	Name     string
	TypeStr  string
	Embedded bool
}

// MethodInfo is a method declared in the package on a named type.
type MethodInfo struct {
	Name    string
	Pointer bool
}

// Site is one //enumkeys: directive attached to a type declaration.
type Site struct {
	Name string
	Args string
	// Pos is the position of the first byte of Args.
	Pos token.Position
}

// At returns the position offset bytes into the site arguments.
func (s Site) At(offset int) token.Position {
	pos := s.Pos
	pos.Offset += offset
	pos.Column += offset
	return pos
}

// TypeKind is a coarse category of a type declaration.
type TypeKind int

const (
	TypeKindOther TypeKind = iota
	TypeKindStruct
	TypeKindInterface
)

// Shape is the field shape of a variant.
type Shape int

const (
	ShapeUnit Shape = iota
	ShapeNamed
	ShapeUnnamed
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeNamed:
		return "named"
	case ShapeUnnamed:
		return "unnamed"
	default:
		return "unknown"
	}
}
