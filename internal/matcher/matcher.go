package matcher

import (
	"slices"

	"github.com/seitarof/gen-enumkeys/internal/parser"
)

// SumType is a sealed interface paired with its variants.
type SumType struct {
	Decl *parser.TypeInfo
	// Marker is the unexported method that seals the interface.
	Marker   string
	Variants []VariantRef
}

// VariantRef is a type implementing a sum type's marker method.
type VariantRef struct {
	Type *parser.TypeInfo
	// Pointer is set when the marker method has a pointer receiver, so only
	// *Type is a member of the sum type.
	Pointer bool
}

// Receiver returns the variant as written in a type switch case.
func (v VariantRef) Receiver() string {
	if v.Pointer {
		return "*" + v.Type.Name
	}
	return v.Type.Name
}

// SumMatcher finds sum types and their variants in a package.
type SumMatcher interface {
	MatchSums(pkg *parser.PackageInfo, only []string) []*SumType
}

type sumMatcherImpl struct{}

// NewSumMatcher returns default sum type matcher.
func NewSumMatcher() SumMatcher {
	return &sumMatcherImpl{}
}

// MatchSums pairs every interface carrying a marker method with the package
// types declaring that method. Interfaces without variants are kept so the
// model can report sites attached to them. With only set, other interfaces
// are skipped.
func (m *sumMatcherImpl) MatchSums(pkg *parser.PackageInfo, only []string) []*SumType {
	var sums []*SumType
	for _, t := range pkg.Types {
		if t.Kind != parser.TypeKindInterface || t.Alias || len(t.Markers) == 0 {
			continue
		}
		if len(only) > 0 && !slices.Contains(only, t.Name) {
			continue
		}
		marker := t.Markers[0]
		sum := &SumType{Decl: t, Marker: marker}
		for _, candidate := range pkg.Types {
			// A generic type cannot appear uninstantiated in a type switch.
			if candidate.Kind == parser.TypeKindInterface || candidate.Alias || candidate.Generic {
				continue
			}
			pointer, ok := candidate.HasMethod(marker)
			if !ok {
				continue
			}
			sum.Variants = append(sum.Variants, VariantRef{Type: candidate, Pointer: pointer})
		}
		sums = append(sums, sum)
	}
	return sums
}

// VariantOf returns the sum type that t belongs to, or nil.
func VariantOf(sums []*SumType, t *parser.TypeInfo) *SumType {
	for _, s := range sums {
		for _, v := range s.Variants {
			if v.Type == t {
				return s
			}
		}
	}
	return nil
}
