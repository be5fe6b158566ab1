package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/seitarof/gen-enumkeys/internal/model"
)

// genCommon emits Equal, Compare and GoString for a key type.
func genCommon(f *jen.File, sum *model.SumType, n keyNames) {
	f.Comment("Equal reports whether k and other are the same key.")
	f.Func().Params(n.recv()).Id("Equal").Params(jen.Id("other").Id(n.key)).Bool().Block(
		jen.Return(jen.Id("k").Op("==").Id("other")),
	)
	f.Line()

	f.Comment("Compare orders keys by variant, then by value.")
	f.Func().Params(n.recv()).Id("Compare").Params(jen.Id("other").Id(n.key)).Int().Block(
		jen.If(
			jen.Id("c").Op(":=").Qual("cmp", "Compare").Call(jen.Id("k").Dot("Kind"), jen.Id("other").Dot("Kind")),
			jen.Id("c").Op("!=").Lit(0),
		).Block(jen.Return(jen.Id("c"))),
		jen.Return(jen.Qual("strings", "Compare").Call(jen.Id("k").Dot("Value"), jen.Id("other").Dot("Value"))),
	)
	f.Line()

	f.Comment("GoString returns k as Go source.")
	f.Func().Params(n.recv()).Id("GoString").Params().String().Block(
		jen.Switch(jen.Id("k").Dot("Kind")).BlockFunc(func(g *jen.Group) {
			for _, v := range sum.Variants {
				if v.IsDefault() {
					g.Case(jen.Id(n.kindConst(v))).Block(jen.Return(
						jen.Lit(n.keyOf(v)+"(").Op("+").Qual("strconv", "Quote").Call(jen.Id("k").Dot("Value")).Op("+").Lit(")"),
					))
					continue
				}
				g.Case(jen.Id(n.kindConst(v))).Block(jen.Return(jen.Lit(n.keyOf(v))))
			}
		}),
		jen.Return(jen.Lit(n.key+"{}")),
	)
	f.Line()
}
