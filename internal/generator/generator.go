package generator

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-enumkeys/internal/model"
)

// Header is the first line of every generated file.
const Header = "Code generated by gen-enumkeys. DO NOT EDIT."

// DefaultOutput is the generated file name used when none is configured.
const DefaultOutput = "enumkeys_gen.go"

const enumkeyPath = "github.com/seitarof/gen-enumkeys/enumkey"

// Generator generates key types, string comparison and codecs for a model.
type Generator interface {
	// Render returns the formatted source for file.
	Render(cfg Config, file *model.File) ([]byte, error)
	// Generate renders file and writes it to cfg.OutputFilename().
	Generate(cfg Config, file *model.File) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
}

type goimportsFormatter struct{}

type fileWriter struct{}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	return &generatorImpl{formatter: f, writer: w}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Render(cfg Config, file *model.File) ([]byte, error) {
	if file.Empty() {
		return nil, fmt.Errorf("nothing to generate for package %s", file.Package)
	}

	f := jen.NewFilePathName(file.PkgPath, file.Package)
	f.HeaderComment(Header)
	f.ImportName(enumkeyPath, "enumkey")

	for _, sum := range file.Sums {
		genSum(f, sum)
	}
	for _, c := range file.Codecs {
		genCodec(f, codecTarget{name: c.Name, recv: "t", settings: c.Settings})
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}

func (g *generatorImpl) Generate(cfg Config, file *model.File) error {
	src, err := g.Render(cfg, file)
	if err != nil {
		return err
	}
	if err := g.writer.Write(cfg.OutputFilename(), src); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func genSum(f *jen.File, sum *model.SumType) {
	if sum.Keys != nil {
		genKeyType(f, sum)
	}
	if sum.UsesCompare() {
		genCompare(f, sum)
	}
}
