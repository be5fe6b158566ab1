package model

import (
	"fmt"

	"github.com/seitarof/gen-enumkeys/internal/parser"
)

// Rule validates one variant of a sum type. Rules run in order and the
// first failure stops the build.
type Rule interface {
	Name() string
	Check(sum *SumType, v *Variant, t *parser.TypeInfo) *Diagnostic
}

// DefaultRules returns the built-in variant rules.
func DefaultRules() []Rule {
	return []Rule{
		defaultOnUnitRule{},
		carrierFieldRule{},
		singleDefaultRule{},
		keyNameRule{},
	}
}

type defaultOnUnitRule struct{}

func (defaultOnUnitRule) Name() string { return "default_on_unit" }

func (defaultOnUnitRule) Check(sum *SumType, v *Variant, _ *parser.TypeInfo) *Diagnostic {
	if !v.IsDefault() || v.Shape != parser.ShapeUnit {
		return nil
	}
	return newDiagnostic(KindDefaultOnUnitVariant, v.optionsPos,
		fmt.Sprintf("default variant %s of %s has no field to carry a value", v.Name, sum.Name), nil)
}

type carrierFieldRule struct{}

func (carrierFieldRule) Name() string { return "carrier_field" }

func (carrierFieldRule) Check(sum *SumType, v *Variant, t *parser.TypeInfo) *Diagnostic {
	if !v.IsDefault() || v.Shape != parser.ShapeNamed {
		return nil
	}
	field := carrierName(v)
	if t.Field(field) != nil {
		return nil
	}
	msg := fmt.Sprintf("default variant %s of %s has no field %s", v.Name, sum.Name, field)
	if v.Options.CarrierField == "" {
		msg += "; name the carrier with default=Field"
	}
	return newDiagnostic(KindUnknownCarrierField, v.optionsPos, msg, nil)
}

type singleDefaultRule struct{}

func (singleDefaultRule) Name() string { return "single_default" }

func (singleDefaultRule) Check(sum *SumType, v *Variant, _ *parser.TypeInfo) *Diagnostic {
	if !v.IsDefault() || sum.Default == nil {
		return nil
	}
	return newDiagnostic(KindMultipleDefaults, v.optionsPos,
		fmt.Sprintf("%s already has default variant %s", sum.Name, sum.Default.Name), nil)
}

// reservedVariantNames would make K+name clash with another identifier
// generated for key type K.
var reservedVariantNames = []string{"Kind", "Of", "Values"}

type keyNameRule struct{}

func (keyNameRule) Name() string { return "key_name" }

func (keyNameRule) Check(sum *SumType, v *Variant, _ *parser.TypeInfo) *Diagnostic {
	if sum.Keys == nil {
		return nil
	}
	key := sum.KeyName()
	for _, name := range reservedVariantNames {
		if v.Name == name {
			return newDiagnostic(KindNameCollision, v.Pos,
				fmt.Sprintf("variant %s of %s: %s%s is already generated for the key type", v.Name, sum.Name, key, name), nil)
		}
	}
	// K+"KindX" is also the kind constant of variant X.
	for _, other := range sum.Variants {
		short := ""
		switch {
		case v.Name == "Kind"+other.Name:
			short = other.Name
		case other.Name == "Kind"+v.Name:
			short = v.Name
		default:
			continue
		}
		return newDiagnostic(KindNameCollision, v.Pos,
			fmt.Sprintf("variants %s and %s of %s both generate %sKind%s", other.Name, v.Name, sum.Name, key, short), nil)
	}
	return nil
}

// defaultCarrierField carries the default value of a named variant unless
// the variant site names another field.
const defaultCarrierField = "Value"

func carrierName(v *Variant) string {
	if v.Options.CarrierField != "" {
		return v.Options.CarrierField
	}
	return defaultCarrierField
}
