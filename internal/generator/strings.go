package generator

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/model"
)

// renamed applies a rename rule to a variant name.
func renamed(rule attr.Rename, name string) string {
	switch rule {
	case attr.RenameUpper:
		return strings.ToUpper(name)
	case attr.RenameLower:
		return strings.ToLower(name)
	case attr.RenameSnake:
		return inflect.Underscore(name)
	case attr.RenameScreamingSnake:
		return strings.ToUpper(inflect.Underscore(name))
	case attr.RenameKebab:
		return inflect.Dasherize(name)
	case attr.RenameCamel:
		return inflect.Camelize(name)
	case attr.RenameLowerCamel:
		return inflect.CamelizeDownFirst(name)
	default:
		return name
	}
}

func errUnknown(format string, args ...jen.Code) *jen.Statement {
	return jen.Qual("fmt", "Errorf").Call(append([]jen.Code{jen.Lit("%w: " + format), jen.Qual(enumkeyPath, "ErrUnknownKey")}, args...)...)
}

// genStrings emits the string form of a key type: String, AppendText,
// Set, the Parse function, the list of fixed keys and Is predicates.
func genStrings(f *jen.File, sum *model.SumType, n keyNames) {
	rule := sum.Keys.Rename

	if d := sum.Default; d != nil {
		f.Commentf("String returns the name of k, or its value for %s.", d.Name)
		f.Comment(shadowNote(d))
	} else {
		f.Comment("String returns the name of k.")
	}
	f.Func().Params(n.recv()).Id("String").Params().String().Block(
		jen.Switch(jen.Id("k").Dot("Kind")).BlockFunc(func(g *jen.Group) {
			for _, v := range sum.Variants {
				if v.IsDefault() {
					g.Case(jen.Id(n.kindConst(v))).Block(jen.Return(jen.Id("k").Dot("Value")))
					continue
				}
				g.Case(jen.Id(n.kindConst(v))).Block(jen.Return(jen.Lit(renamed(rule, v.Name))))
			}
		}),
		jen.Return(jen.Lit("")),
	)
	f.Line()

	f.Comment("AppendText implements encoding.TextAppender.")
	f.Func().Params(n.recv()).Id("AppendText").Params(jen.Id("b").Index().Byte()).Params(jen.Index().Byte(), jen.Error()).Block(
		jen.If(jen.Id("k").Dot("Kind").Op("==").Lit(0).Op("||").Id("k").Dot("Kind").Op(">").Id(lastKind(sum, n))).Block(
			jen.Return(jen.Id("b"), errUnknown("%s", jen.Id("k").Dot("Kind"))),
		),
		jen.Return(jen.Append(jen.Id("b"), jen.Id("k").Dot("String").Call().Op("...")), jen.Nil()),
	)
	f.Line()

	f.Comment("Set parses s into k.")
	f.Func().Params(n.ptrRecv()).Id("Set").Params(jen.Id("s").String()).Error().Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(n.parse()).Call(jen.Id("s")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Op("*").Id("k").Op("=").Id("v"),
		jen.Return(jen.Nil()),
	)
	f.Line()

	if d := sum.Default; d != nil {
		f.Commentf("%s returns the key named s. Any other string is a %s key.", n.parse(), d.Name)
		f.Comment(shadowNote(d))
	} else {
		f.Commentf("%s returns the key named s.", n.parse())
	}
	f.Func().Id(n.parse()).Params(jen.Id("s").String()).Params(jen.Id(n.key), jen.Error()).BlockFunc(func(g *jen.Group) {
		fixed := fixedVariants(sum)
		if len(fixed) > 0 {
			g.Switch(jen.Id("s")).BlockFunc(func(sw *jen.Group) {
				for _, v := range fixed {
					sw.Case(jen.Lit(renamed(rule, v.Name))).Block(jen.Return(jen.Id(n.keyOf(v)), jen.Nil()))
				}
			})
		}
		if d := sum.Default; d != nil {
			g.Return(jen.Id(n.keyOf(d)).Call(cloned(jen.Id("s"))), jen.Nil())
			return
		}
		g.Return(jen.Id(n.key).Values(), errUnknown("%q", jen.Id("s")))
	})
	f.Line()

	f.Commentf("%s returns the keys of the variants without a value, in declaration order.", n.values())
	f.Func().Id(n.values()).Params().Index().Id(n.key).Block(
		jen.Return(jen.Index().Id(n.key).ValuesFunc(func(g *jen.Group) {
			for _, v := range fixedVariants(sum) {
				g.Id(n.keyOf(v))
			}
		})),
	)
	f.Line()

	for _, v := range sum.Variants {
		f.Commentf("%s reports whether k is a %s key.", n.is(v), v.Name)
		f.Func().Params(n.recv()).Id(n.is(v)).Params().Bool().Block(
			jen.Return(jen.Id("k").Dot("Kind").Op("==").Id(n.kindConst(v))),
		)
		f.Line()
	}
}

// shadowNote documents that a default value spelled like a variant name
// does not survive a round trip through the string form.
func shadowNote(d *model.Variant) string {
	return fmt.Sprintf("A %s value equal to a variant name reads back as that variant.", d.Name)
}

// lastKind names the highest kind constant, or a literal 0 without variants.
func lastKind(sum *model.SumType, n keyNames) string {
	if len(sum.Variants) == 0 {
		return "0"
	}
	return n.kindConst(sum.Variants[len(sum.Variants)-1])
}
