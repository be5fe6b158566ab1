// Package attr parses the option languages written in //enumkeys: directives.
//
// Every site shares one skeleton: a sequence of clauses
//
//	keyword [ '=' value | '[' list ']' | '(' clauses ')' ]
//
// separated by optional commas. Parsing is all-or-nothing: on the first
// unknown keyword or malformed clause the partially built record is dropped
// and a *GrammarError is returned.
package attr

import "fmt"

// Site names, as written after the "//enumkeys:" prefix.
const (
	SiteKeys    = "keys"
	SiteCompare = "compare"
	SiteVariant = "variant"
	SiteStr     = "str"
	SiteCodec   = "codec"
)

// TypeOptions is the record of a type-level keys site.
type TypeOptions struct {
	KeyTypeName          string
	StoreDefaultBorrowed bool
	DeriveCommon         bool
	DeriveStrings        bool
	Rename               Rename
	Codec                *CodecSettings
}

// VariantOptions is the record of a variant-level variant site.
type VariantOptions struct {
	IsDefault bool
	// CarrierField names the field holding the default value. Empty means
	// the implied carrier: the value itself for unnamed shapes, "Value" for
	// named ones.
	CarrierField string
}

// CompareSettings is the record of a type-level compare site.
type CompareSettings struct {
	PartialEq      bool
	FoldCase       bool
	IncludeVariant bool
}

// DefaultCompareSettings returns the settings used when a type has string
// lists on its variants but no compare site of its own.
func DefaultCompareSettings() CompareSettings {
	return CompareSettings{PartialEq: true, IncludeVariant: true}
}

// CompareLists is the record of a variant-level str site. Order is kept.
type CompareLists struct {
	Equals   []string
	Contains []string
}

// CodecSettings is the record of a codec site or of the codec clause of a
// keys site.
type CodecSettings struct {
	UseAsRef    bool
	Deserialize DeserializeStrategy
}

// DeserializeStrategy selects how a decoded string becomes a value.
type DeserializeStrategy int

const (
	// FromString calls the package-level ParseT(string) (T, error).
	FromString DeserializeStrategy = iota
	// TryFromOwnedString calls (*T).Set(string) error.
	TryFromOwnedString
)

func (s DeserializeStrategy) String() string {
	switch s {
	case FromString:
		return "from_str"
	case TryFromOwnedString:
		return "try_from_string"
	default:
		return fmt.Sprintf("DeserializeStrategy(%d)", int(s))
	}
}

// Rename is a naming rule applied to the string form of generated keys.
type Rename string

const (
	RenameNone           Rename = ""
	RenameUpper          Rename = "upper"
	RenameLower          Rename = "lower"
	RenameSnake          Rename = "snake"
	RenameScreamingSnake Rename = "screaming_snake"
	RenameKebab          Rename = "kebab"
	RenameCamel          Rename = "camel"
	RenameLowerCamel     Rename = "lower_camel"
)

var renameRules = []Rename{
	RenameUpper,
	RenameLower,
	RenameSnake,
	RenameScreamingSnake,
	RenameKebab,
	RenameCamel,
	RenameLowerCamel,
}
