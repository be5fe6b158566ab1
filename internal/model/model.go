// Package model validates annotated declarations and turns them into the
// input of the generators.
package model

import (
	"go/token"

	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/parser"
)

// File is everything generated for one package.
type File struct {
	Package string
	PkgPath string
	Dir     string
	Sums    []*SumType
	Codecs  []*CodecType
	// Warnings lists sites that were ignored.
	Warnings []*Diagnostic
}

// Empty reports whether nothing would be generated.
func (f *File) Empty() bool {
	return len(f.Sums) == 0 && len(f.Codecs) == 0
}

// SumType is a validated variant type.
type SumType struct {
	Name string
	Pos  token.Position
	// Keys is nil when the type has no keys site.
	Keys *attr.TypeOptions
	// Compare is nil unless string comparison is generated.
	Compare  *attr.CompareSettings
	Variants []*Variant
	Default  *Variant
}

// UsesCompare reports whether string comparison is generated.
func (s *SumType) UsesCompare() bool {
	return s.Compare != nil
}

// KeyName returns the key type name, or "" without a keys site.
func (s *SumType) KeyName() string {
	if s.Keys == nil {
		return ""
	}
	return s.Keys.KeyTypeName
}

// Variant is one member of a SumType.
type Variant struct {
	Name    string
	Pos     token.Position
	Pointer bool
	Shape   parser.Shape
	Options attr.VariantOptions
	// Carrier is the field holding the default value. Empty for unnamed
	// shapes, where the value itself is the carrier.
	Carrier string
	// Lists holds the finalized literals: folded when requested, with the
	// variant name registered and duplicates removed.
	Lists attr.CompareLists

	optionsPos token.Position
}

// IsDefault reports whether the variant carries the default value.
func (v *Variant) IsDefault() bool {
	return v.Options.IsDefault
}

// CodecType is a concrete type with a standalone codec site.
type CodecType struct {
	Name     string
	Pos      token.Position
	Settings attr.CodecSettings
}
