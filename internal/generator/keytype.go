package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/model"
	"github.com/seitarof/gen-enumkeys/internal/parser"
)

// storageStrategy decides whether a borrowed key may share the default
// variant's string memory.
type storageStrategy int

const (
	storageOwned storageStrategy = iota
	storageBorrowed
)

func strategyOf(opts *attr.TypeOptions) storageStrategy {
	if opts.StoreDefaultBorrowed {
		return storageBorrowed
	}
	return storageOwned
}

// keyNames derives every generated identifier of a key type.
type keyNames struct {
	sum string
	key string
}

func (n keyNames) kind() string                      { return n.key + "Kind" }
func (n keyNames) kindConst(v *model.Variant) string { return n.kind() + v.Name }
func (n keyNames) keyOf(v *model.Variant) string     { return n.key + v.Name }
func (n keyNames) of() string                        { return n.key + "Of" }
func (n keyNames) equal() string                     { return "equal" + n.key }
func (n keyNames) parse() string                     { return "Parse" + n.key }
func (n keyNames) values() string                    { return n.key + "Values" }
func (n keyNames) is(v *model.Variant) string        { return "Is" + v.Name }
func (n keyNames) kindRecv() *jen.Statement          { return jen.Id("k").Id(n.kind()) }
func (n keyNames) recv() *jen.Statement              { return jen.Id("k").Id(n.key) }
func (n keyNames) ptrRecv() *jen.Statement           { return jen.Id("k").Op("*").Id(n.key) }
func (n keyNames) variantRecv(v *model.Variant) *jen.Statement {
	return jen.Id("v").Add(variantType(v))
}

func namesOf(sum *model.SumType) keyNames {
	return keyNames{sum: sum.Name, key: sum.KeyName()}
}

func variantType(v *model.Variant) *jen.Statement {
	if v.Pointer {
		return jen.Op("*").Id(v.Name)
	}
	return jen.Id(v.Name)
}

// carrier is the default value of the variant bound to v, as a string.
func carrier(v *model.Variant) *jen.Statement {
	return carrierOf(v, v.Pointer)
}

// carrierOf reads the default value through a pointer when deref is set.
func carrierOf(v *model.Variant, deref bool) *jen.Statement {
	if v.Shape == parser.ShapeUnnamed {
		if deref {
			return jen.String().Call(jen.Op("*").Id("v"))
		}
		return jen.String().Call(jen.Id("v"))
	}
	return jen.String().Call(jen.Id("v").Dot(v.Carrier))
}

// heldByPointer reports whether some variant has a value receiver marker,
// which makes a pointer to it a member of the sum type as well.
func heldByPointer(sum *model.SumType) bool {
	for _, v := range sum.Variants {
		if !v.Pointer {
			return true
		}
	}
	return false
}

func cloned(s *jen.Statement) *jen.Statement {
	return jen.Qual("strings", "Clone").Call(s)
}

func genKeyType(f *jen.File, sum *model.SumType) {
	n := namesOf(sum)
	strategy := strategyOf(sum.Keys)

	genKind(f, sum, n)

	f.Commentf("%s is the payload-free key of %s.", n.key, n.sum)
	if sum.Default != nil {
		f.Commentf("Value is only set for %s.", sum.Default.Name)
	}
	f.Type().Id(n.key).Struct(
		jen.Id("Kind").Id(n.kind()),
		jen.Id("Value").String(),
	)
	f.Line()

	f.Commentf("KeyEnum marks %s as a key type.", n.key)
	f.Func().Params(jen.Id(n.key)).Id("KeyEnum").Params().Block()
	f.Line()

	fixed := fixedVariants(sum)
	if len(fixed) > 0 {
		f.Var().DefsFunc(func(g *jen.Group) {
			for _, v := range fixed {
				g.Id(n.keyOf(v)).Op("=").Id(n.key).Values(jen.Dict{
					jen.Id("Kind"): jen.Id(n.kindConst(v)),
				})
			}
		})
		f.Line()
	}

	if d := sum.Default; d != nil {
		f.Commentf("%s returns the %s key carrying value.", n.keyOf(d), d.Name)
		f.Func().Id(n.keyOf(d)).Params(jen.Id("value").String()).Id(n.key).Block(
			jen.Return(jen.Id(n.key).Values(jen.Dict{
				jen.Id("Kind"):  jen.Id(n.kindConst(d)),
				jen.Id("Value"): jen.Id("value"),
			})),
		)
		f.Line()
	}

	f.Commentf("%s returns the owned key of v, or the zero %s when v is nil.", n.of(), n.key)
	f.Func().Id(n.of()).Params(jen.Id("v").Id(n.sum)).Id(n.key).Block(
		jen.If(
			jen.List(jen.Id("h"), jen.Id("ok")).Op(":=").Id("v").Assert(jen.Qual(enumkeyPath, "HasKeyEnum").Types(jen.Id(n.key))),
			jen.Id("ok"),
		).Block(jen.Return(jen.Id("h").Dot("GetKey").Call())),
		jen.Return(jen.Id(n.key).Values()),
	)
	f.Line()

	genEqual(f, sum, n)

	f.Comment("EqualValue reports whether k is the key of v.")
	f.Func().Params(n.recv()).Id("EqualValue").Params(jen.Id("v").Id(n.sum)).Bool().Block(
		jen.Return(jen.Id(n.equal()).Call(jen.Id("v"), jen.Id("k"))),
	)
	f.Line()

	if strategy == storageBorrowed {
		f.Comment("ToOwned returns k with its own copy of Value.")
		f.Func().Params(n.recv()).Id("ToOwned").Params().Id(n.key).Block(
			jen.Id("k").Dot("Value").Op("=").Add(cloned(jen.Id("k").Dot("Value"))),
			jen.Return(jen.Id("k")),
		)
		f.Line()
	}

	if sum.UsesCompare() {
		genKeyEqualsStr(f, sum, n)
	}
	if sum.Keys.DeriveStrings || sum.Keys.Codec != nil {
		genStrings(f, sum, n)
	}
	if sum.Keys.DeriveCommon {
		genCommon(f, sum, n)
	}
	if c := sum.Keys.Codec; c != nil {
		genCodec(f, codecTarget{name: n.key, recv: "k", settings: *c, fallback: sum.Default})
	}

	for _, v := range sum.Variants {
		genVariantKeyMethods(f, v, n, strategy)
	}

	f.Var().DefsFunc(func(g *jen.Group) {
		for _, v := range sum.Variants {
			g.Id("_").Qual(enumkeyPath, "Keyed").Types(jen.Id(n.key)).Op("=").Parens(jen.Op("*").Id(v.Name)).Call(jen.Nil())
		}
	})
	f.Line()
}

func fixedVariants(sum *model.SumType) []*model.Variant {
	out := make([]*model.Variant, 0, len(sum.Variants))
	for _, v := range sum.Variants {
		if !v.IsDefault() {
			out = append(out, v)
		}
	}
	return out
}

func genKind(f *jen.File, sum *model.SumType, n keyNames) {
	f.Commentf("%s identifies the variant of a %s.", n.kind(), n.sum)
	f.Type().Id(n.kind()).Uint8()
	f.Line()

	if len(sum.Variants) > 0 {
		f.Const().DefsFunc(func(g *jen.Group) {
			for i, v := range sum.Variants {
				if i == 0 {
					g.Id(n.kindConst(v)).Id(n.kind()).Op("=").Iota().Op("+").Lit(1)
					continue
				}
				g.Id(n.kindConst(v))
			}
		})
		f.Line()
	}

	f.Func().Params(n.kindRecv()).Id("String").Params().String().Block(
		jen.Switch(jen.Id("k")).BlockFunc(func(g *jen.Group) {
			for _, v := range sum.Variants {
				g.Case(jen.Id(n.kindConst(v))).Block(jen.Return(jen.Lit(v.Name)))
			}
		}),
		jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(n.kind()+"(%d)"), jen.Uint8().Call(jen.Id("k")))),
	)
	f.Line()
}

// genEqual emits the type switch shared by EqualKey and EqualValue. A
// variant with a value receiver matches through a non-nil pointer too.
func genEqual(f *jen.File, sum *model.SumType, n keyNames) {
	subject := jen.Id("v").Assert(jen.Type())
	if sum.Default != nil || heldByPointer(sum) {
		subject = jen.Id("v").Op(":=").Id("v").Assert(jen.Type())
	}
	same := func(v *model.Variant, deref bool) *jen.Statement {
		s := jen.Id("k").Dot("Kind").Op("==").Id(n.kindConst(v))
		if v.IsDefault() {
			s = s.Op("&&").Id("k").Dot("Value").Op("==").Add(carrierOf(v, deref))
		}
		return s
	}
	f.Func().Id(n.equal()).Params(jen.Id("v").Id(n.sum), n.recv()).Bool().Block(
		jen.Switch(subject).BlockFunc(func(g *jen.Group) {
			for _, v := range sum.Variants {
				g.Case(variantType(v)).Block(jen.Return(same(v, v.Pointer)))
				if !v.Pointer {
					g.Case(jen.Op("*").Id(v.Name)).Block(
						jen.Return(jen.Id("v").Op("!=").Nil().Op("&&").Add(same(v, true))),
					)
				}
			}
		}),
		jen.Return(jen.False()),
	)
	f.Line()
}

func genVariantKeyMethods(f *jen.File, v *model.Variant, n keyNames, strategy storageStrategy) {
	owned := jen.Id(n.keyOf(v))
	borrowed := jen.Id(n.keyOf(v))
	if v.IsDefault() {
		owned = jen.Id(n.keyOf(v)).Call(cloned(carrier(v)))
		borrowed = jen.Id(n.keyOf(v)).Call(cloned(carrier(v)))
		if strategy == storageBorrowed {
			borrowed = jen.Id(n.keyOf(v)).Call(carrier(v))
		}
	}

	f.Comment("GetKey returns the key of v.")
	f.Func().Params(n.variantRecv(v)).Id("GetKey").Params().Id(n.key).Block(jen.Return(owned))
	f.Line()

	if v.IsDefault() && strategy == storageBorrowed {
		f.Comment("GetKeyBorrowed returns the key of v sharing its value.")
	} else {
		f.Comment("GetKeyBorrowed returns the key of v.")
	}
	f.Func().Params(n.variantRecv(v)).Id("GetKeyBorrowed").Params().Id(n.key).Block(jen.Return(borrowed))
	f.Line()

	f.Comment("EqualKey reports whether k is the key of v.")
	f.Func().Params(n.variantRecv(v)).Id("EqualKey").Params(n.recv()).Bool().Block(
		jen.Return(jen.Id(n.equal()).Call(jen.Id("v"), jen.Id("k"))),
	)
	f.Line()
}
