package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/model"
)

func equalsStrName(sum *model.SumType) string {
	return sum.Name + "EqualsStr"
}

// genCompare emits the string comparison of a sum type and, with
// partial_eq, an EqualsStr method per variant.
func genCompare(f *jen.File, sum *model.SumType) {
	name := equalsStrName(sum)

	f.Commentf("%s reports whether candidate names the variant of v.", name)
	if sum.Compare.FoldCase {
		f.Comment("Case is ignored.")
	}
	f.Func().Id(name).Params(jen.Id("v").Id(sum.Name), jen.Id("candidate").String()).Bool().BlockFunc(func(g *jen.Group) {
		foldCandidate(g, sum.Compare)
		g.Switch(jen.Id("v").Assert(jen.Type())).BlockFunc(func(sw *jen.Group) {
			for _, v := range sum.Variants {
				cases := []jen.Code{variantType(v)}
				if !v.Pointer {
					cases = append(cases, jen.Op("*").Id(v.Name))
				}
				sw.Case(cases...).Block(matchArm(v.Lists)...)
			}
		})
		g.Return(jen.False())
	})
	f.Line()

	if !sum.Compare.PartialEq {
		return
	}
	for _, v := range sum.Variants {
		f.Comment("EqualsStr reports whether candidate names v.")
		f.Func().Params(jen.Id("v").Add(variantType(v))).Id("EqualsStr").Params(jen.Id("candidate").String()).Bool().Block(
			jen.Return(jen.Id(name).Call(jen.Id("v"), jen.Id("candidate"))),
		)
		f.Line()
	}
	f.Var().DefsFunc(func(g *jen.Group) {
		for _, v := range sum.Variants {
			g.Id("_").Qual(enumkeyPath, "StrEqualer").Op("=").Parens(jen.Op("*").Id(v.Name)).Call(jen.Nil())
		}
	})
	f.Line()
}

// genKeyEqualsStr emits the same comparison keyed on the variant kind.
func genKeyEqualsStr(f *jen.File, sum *model.SumType, n keyNames) {
	f.Comment("EqualsStr reports whether candidate names the variant of k.")
	f.Func().Params(n.recv()).Id("EqualsStr").Params(jen.Id("candidate").String()).Bool().BlockFunc(func(g *jen.Group) {
		foldCandidate(g, sum.Compare)
		g.Switch(jen.Id("k").Dot("Kind")).BlockFunc(func(sw *jen.Group) {
			for _, v := range sum.Variants {
				sw.Case(jen.Id(n.kindConst(v))).Block(matchArm(v.Lists)...)
			}
		})
		g.Return(jen.False())
	})
	f.Line()
}

func foldCandidate(g *jen.Group, settings *attr.CompareSettings) {
	if settings.FoldCase {
		g.Id("candidate").Op("=").Qual("strings", "ToLower").Call(jen.Id("candidate"))
	}
}

// matchArm tries equals before contains. Literals are already folded.
func matchArm(lists attr.CompareLists) []jen.Code {
	equals := orChain(lists.Equals, func(lit string) *jen.Statement {
		return jen.Id("candidate").Op("==").Lit(lit)
	})
	contains := orChain(lists.Contains, func(lit string) *jen.Statement {
		return jen.Qual("strings", "Contains").Call(jen.Id("candidate"), jen.Lit(lit))
	})
	switch {
	case equals == nil && contains == nil:
		return []jen.Code{jen.Return(jen.False())}
	case contains == nil:
		return []jen.Code{jen.Return(equals)}
	case equals == nil:
		return []jen.Code{jen.Return(contains)}
	default:
		return []jen.Code{
			jen.If(equals).Block(jen.Return(jen.True())),
			jen.Return(contains),
		}
	}
}

func orChain(lits []string, term func(string) *jen.Statement) *jen.Statement {
	if len(lits) == 0 {
		return nil
	}
	chain := term(lits[0])
	for _, lit := range lits[1:] {
		chain.Op("||").Add(term(lit))
	}
	return chain
}
