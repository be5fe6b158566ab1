package model

import (
	"errors"
	"go/token"
	"strings"
)

// ErrInvalidDeclaration is matched by every *Diagnostic.
var ErrInvalidDeclaration = errors.New("enumkeys: invalid declaration")

// Kind classifies a Diagnostic.
type Kind int

const (
	KindGrammar Kind = iota + 1
	KindNotAVariantType
	KindMissingKeyTypeName
	KindDefaultOnUnitVariant
	KindUnknownCarrierField
	KindMultipleDefaults
	KindDuplicateAttribute
	KindNotAConcreteType
	KindSharedVariant
	KindNameCollision
	// KindIgnoredSite is only used for warnings.
	KindIgnoredSite
)

var kindNames = map[Kind]string{
	KindGrammar:              "grammar",
	KindNotAVariantType:      "not_a_variant_type",
	KindMissingKeyTypeName:   "missing_key_type_name",
	KindDefaultOnUnitVariant: "default_on_unit_variant",
	KindUnknownCarrierField:  "unknown_carrier_field",
	KindMultipleDefaults:     "multiple_defaults",
	KindDuplicateAttribute:   "duplicate_attribute",
	KindNotAConcreteType:     "not_a_concrete_type",
	KindSharedVariant:        "shared_variant",
	KindNameCollision:        "name_collision",
	KindIgnoredSite:          "ignored_site",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Diagnostic is a declaration error or warning anchored at a source position.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Position
	Message string
	Cause   error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Cause != nil {
		b.WriteString(": ")
		b.WriteString(d.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// Is reports whether the target is ErrInvalidDeclaration.
func (d *Diagnostic) Is(target error) bool {
	return target == ErrInvalidDeclaration
}

func newDiagnostic(kind Kind, pos token.Position, message string, cause error) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: message, Cause: cause}
}
