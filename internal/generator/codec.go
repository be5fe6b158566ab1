package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/model"
)

// codecTarget is a type receiving MarshalText and UnmarshalText.
type codecTarget struct {
	name     string
	recv     string
	settings attr.CodecSettings
	// fallback is the default variant of a key type, if any.
	fallback *model.Variant
}

func genCodec(f *jen.File, t codecTarget) {
	f.Comment("MarshalText implements encoding.TextMarshaler.")
	if t.fallback != nil {
		f.Comment(shadowNote(t.fallback))
	}
	marshal := jen.Return(jen.Index().Byte().Call(jen.Id(t.recv).Dot("String").Call()), jen.Nil())
	if t.settings.UseAsRef {
		marshal = jen.Return(jen.Id(t.recv).Dot("AppendText").Call(jen.Nil()))
	}
	f.Func().Params(jen.Id(t.recv).Id(t.name)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(marshal)
	f.Line()

	wrap := func(err jen.Code) *jen.Statement {
		return jen.Qual("fmt", "Errorf").Call(jen.Lit("decode "+t.name+": %w"), err)
	}

	f.Comment("UnmarshalText implements encoding.TextUnmarshaler.")
	f.Func().Params(jen.Id(t.recv).Op("*").Id(t.name)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().BlockFunc(func(g *jen.Group) {
		switch t.settings.Deserialize {
		case attr.TryFromOwnedString:
			g.If(
				jen.Err().Op(":=").Id(t.recv).Dot("Set").Call(jen.String().Call(jen.Id("text"))),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(wrap(jen.Err())))
		default:
			g.List(jen.Id("v"), jen.Err()).Op(":=").Id("Parse" + t.name).Call(jen.String().Call(jen.Id("text")))
			g.If(jen.Err().Op("!=").Nil()).Block(jen.Return(wrap(jen.Err())))
			g.Op("*").Id(t.recv).Op("=").Id("v")
		}
		g.Return(jen.Nil())
	})
	f.Line()

	f.Var().Defs(
		jen.Id("_").Qual("encoding", "TextMarshaler").Op("=").Parens(jen.Op("*").Id(t.name)).Call(jen.Nil()),
		jen.Id("_").Qual("encoding", "TextUnmarshaler").Op("=").Parens(jen.Op("*").Id(t.name)).Call(jen.Nil()),
	)
	f.Line()
}
