package model

import (
	"errors"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/matcher"
	"github.com/seitarof/gen-enumkeys/internal/parser"
)

func site(name, args string, line int) parser.Site {
	return parser.Site{
		Name: name,
		Args: args,
		Pos:  token.Position{Filename: "ext.go", Line: line, Column: len("//enumkeys:"+name+" ") + 1},
	}
}

func iface(name string, sites ...parser.Site) *parser.TypeInfo {
	return &parser.TypeInfo{
		Name:    name,
		Kind:    parser.TypeKindInterface,
		Markers: []string{"is" + name},
		Sites:   sites,
	}
}

func variant(name, marker string, shape parser.Shape, fields []string, sites ...parser.Site) *parser.TypeInfo {
	t := &parser.TypeInfo{
		Name:    name,
		Kind:    parser.TypeKindStruct,
		Shape:   shape,
		Methods: []parser.MethodInfo{{Name: marker}},
		Sites:   sites,
	}
	if shape == parser.ShapeUnnamed {
		t.Kind = parser.TypeKindOther
		t.Fields = []parser.FieldInfo{{TypeStr: "string"}}
	}
	for _, f := range fields {
		t.Fields = append(t.Fields, parser.FieldInfo{Name: f, TypeStr: "string"})
	}
	return t
}

func build(t *testing.T, types ...*parser.TypeInfo) (*File, error) {
	t.Helper()
	pkg := &parser.PackageInfo{Name: "smtp", PkgPath: "example.com/smtp", Types: types}
	return New().Build(pkg, matcher.NewSumMatcher().MatchSums(pkg, nil))
}

func requireKind(t *testing.T, err error, want Kind) *Diagnostic {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v diagnostic, got nil", want)
	}
	var d *Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error type = %T, want *Diagnostic", err)
	}
	if d.Kind != want {
		t.Fatalf("Kind = %v, want %v (%v)", d.Kind, want, err)
	}
	if !errors.Is(err, ErrInvalidDeclaration) {
		t.Fatal("diagnostic should match ErrInvalidDeclaration")
	}
	return d
}

func TestBuild_Extension(t *testing.T) {
	file, err := build(t,
		iface("Extension",
			site("keys", "name=ExtensionKey, borrowed", 3),
			site("compare", "fold_case", 4),
		),
		variant("Size", "isExtension", parser.ShapeNamed, []string{"Limit"}),
		variant("StartTLS", "isExtension", parser.ShapeUnit, nil,
			site("str", `equals["STARTTLS", "tls"]`, 10),
			site("str", `contains["TLS"]`, 11),
		),
		variant("Other", "isExtension", parser.ShapeUnnamed, nil,
			site("variant", "default", 15),
			site("str", `equals["x-other", "X-Other"], contains["x-"]`, 16),
		),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if file.Package != "smtp" || len(file.Sums) != 1 || len(file.Warnings) != 0 {
		t.Fatalf("unexpected file: %#v", file)
	}

	sum := file.Sums[0]
	if sum.KeyName() != "ExtensionKey" || !sum.Keys.StoreDefaultBorrowed {
		t.Fatalf("unexpected keys: %#v", sum.Keys)
	}
	if !sum.UsesCompare() || !sum.Compare.FoldCase || !sum.Compare.IncludeVariant {
		t.Fatalf("unexpected compare: %#v", sum.Compare)
	}
	if sum.Default == nil || sum.Default.Name != "Other" || sum.Default.Carrier != "" {
		t.Fatalf("unexpected default: %#v", sum.Default)
	}

	want := map[string]attr.CompareLists{
		"Size":     {Equals: []string{"size"}, Contains: []string{}},
		"StartTLS": {Equals: []string{"starttls", "tls"}, Contains: []string{"tls"}},
		"Other":    {Equals: []string{"x-other", "other"}, Contains: []string{"x-"}},
	}
	for _, v := range sum.Variants {
		if diff := cmp.Diff(want[v.Name], v.Lists); diff != "" {
			t.Fatalf("%s lists mismatch (-want +got):\n%s", v.Name, diff)
		}
	}
}

func TestBuild_ListsKeepExplicitOrderBeforeVariantName(t *testing.T) {
	file, err := build(t,
		iface("Id", site("compare", "", 1)),
		variant("Uuid", "isId", parser.ShapeUnit, nil, site("str", `equals["uuid::Uuid", "Uuid"]`, 5)),
		variant("Ulid", "isId", parser.ShapeUnit, nil),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := file.Sums[0].Variants
	if diff := cmp.Diff([]string{"uuid::Uuid", "Uuid"}, got[0].Lists.Equals); diff != "" {
		t.Fatalf("Uuid equals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ulid"}, got[1].Lists.Equals); diff != "" {
		t.Fatalf("Ulid equals mismatch (-want +got):\n%s", diff)
	}
	if file.Sums[0].Keys != nil {
		t.Fatal("compare-only type should have no keys")
	}
}

func TestBuild_StrSiteImpliesDefaultCompare(t *testing.T) {
	file, err := build(t,
		iface("Mode"),
		variant("Fast", "isMode", parser.ShapeUnit, nil, site("str", `contains["quick"]`, 4)),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(file.Sums) != 1 || *file.Sums[0].Compare != attr.DefaultCompareSettings() {
		t.Fatalf("unexpected sums: %#v", file.Sums)
	}
}

func TestBuild_IncludeVariantDisabled(t *testing.T) {
	file, err := build(t,
		iface("Mode", site("compare", "include_variant=false", 1)),
		variant("Fast", "isMode", parser.ShapeUnit, nil),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := file.Sums[0].Variants[0].Lists; len(got.Equals) != 0 || len(got.Contains) != 0 {
		t.Fatalf("lists should be empty, got %#v", got)
	}
}

func TestBuild_NamedCarrier(t *testing.T) {
	file, err := build(t,
		iface("Header", site("keys", "name=HeaderKey", 1)),
		variant("Custom", "isHeader", parser.ShapeNamed, []string{"Name", "Raw"}, site("variant", "default=Name", 5)),
		variant("Plain", "isHeader", parser.ShapeNamed, []string{"Value"}),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := file.Sums[0].Default; got == nil || got.Carrier != "Name" {
		t.Fatalf("unexpected default: %#v", got)
	}

	file, err = build(t,
		iface("Header", site("keys", "name=HeaderKey", 1)),
		variant("Custom", "isHeader", parser.ShapeNamed, []string{"Value"}, site("variant", "default", 5)),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := file.Sums[0].Default; got == nil || got.Carrier != "Value" {
		t.Fatalf("unexpected default: %#v", got)
	}
}

func TestBuild_Diagnostics(t *testing.T) {
	tests := []struct {
		name  string
		types []*parser.TypeInfo
		kind  Kind
		line  int
	}{
		{
			name:  "grammar",
			types: []*parser.TypeInfo{iface("E", site("keys", "name=K, bogus", 2))},
			kind:  KindGrammar,
			line:  2,
		},
		{
			name:  "unknown site",
			types: []*parser.TypeInfo{iface("E", site("key", "name=K", 2))},
			kind:  KindGrammar,
			line:  2,
		},
		{
			name: "keys on struct",
			types: []*parser.TypeInfo{
				{Name: "Config", Kind: parser.TypeKindStruct, Sites: []parser.Site{site("keys", "name=K", 3)}},
			},
			kind: KindNotAVariantType,
			line: 3,
		},
		{
			name: "keys on interface without marker",
			types: []*parser.TypeInfo{
				{Name: "Reader", Kind: parser.TypeKindInterface, Sites: []parser.Site{site("keys", "name=K", 4)}},
			},
			kind: KindNotAVariantType,
			line: 4,
		},
		{
			name:  "missing key name",
			types: []*parser.TypeInfo{iface("E", site("keys", "borrowed", 5))},
			kind:  KindMissingKeyTypeName,
			line:  5,
		},
		{
			name: "default on unit",
			types: []*parser.TypeInfo{
				iface("E", site("keys", "name=K", 1)),
				variant("A", "isE", parser.ShapeUnit, nil, site("variant", "default", 6)),
			},
			kind: KindDefaultOnUnitVariant,
			line: 6,
		},
		{
			name: "unknown carrier",
			types: []*parser.TypeInfo{
				iface("E", site("keys", "name=K", 1)),
				variant("A", "isE", parser.ShapeNamed, []string{"Name"}, site("variant", "default", 7)),
			},
			kind: KindUnknownCarrierField,
			line: 7,
		},
		{
			name: "explicit unknown carrier",
			types: []*parser.TypeInfo{
				iface("E", site("keys", "name=K", 1)),
				variant("A", "isE", parser.ShapeNamed, []string{"Value"}, site("variant", "default=Name", 8)),
			},
			kind: KindUnknownCarrierField,
			line: 8,
		},
		{
			name: "multiple defaults",
			types: []*parser.TypeInfo{
				iface("E", site("keys", "name=K", 1)),
				variant("A", "isE", parser.ShapeUnnamed, nil, site("variant", "default", 2)),
				variant("B", "isE", parser.ShapeUnnamed, nil, site("variant", "default", 9)),
			},
			kind: KindMultipleDefaults,
			line: 9,
		},
		{
			name:  "duplicate keys",
			types: []*parser.TypeInfo{iface("E", site("keys", "name=K", 1), site("keys", "name=J", 10))},
			kind:  KindDuplicateAttribute,
			line:  10,
		},
		{
			name:  "codec on interface",
			types: []*parser.TypeInfo{iface("E", site("codec", "", 11))},
			kind:  KindNotAConcreteType,
			line:  11,
		},
		{
			name: "grammar in str site",
			types: []*parser.TypeInfo{
				iface("E", site("compare", "", 1)),
				variant("A", "isE", parser.ShapeUnit, nil, site("str", `equals[A]`, 12)),
			},
			kind: KindGrammar,
			line: 12,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := build(t, tc.types...)
			d := requireKind(t, err, tc.kind)
			if d.Pos.Line != tc.line {
				t.Fatalf("Line = %d, want %d", d.Pos.Line, tc.line)
			}
		})
	}
}

func TestBuild_GrammarPositionIncludesTokenOffset(t *testing.T) {
	keys := site("keys", "name=K, bogus", 2)
	_, err := build(t, iface("E", keys))
	d := requireKind(t, err, KindGrammar)
	if want := keys.Pos.Column + len("name=K, "); d.Pos.Column != want {
		t.Fatalf("Column = %d, want %d", d.Pos.Column, want)
	}
	var gerr *attr.GrammarError
	if !errors.As(err, &gerr) || gerr.Found != "bogus" {
		t.Fatalf("cause should be the grammar error, got %v", d.Cause)
	}
}

func TestBuild_FailsFastInSourceOrder(t *testing.T) {
	_, err := build(t,
		iface("E", site("keys", "borrowed", 1)),
		variant("A", "isE", parser.ShapeUnit, nil, site("variant", "default", 2)),
	)
	requireKind(t, err, KindMissingKeyTypeName)
}

func TestBuild_IgnoredSitesAreWarnings(t *testing.T) {
	file, err := build(t,
		&parser.TypeInfo{Name: "Loose", Kind: parser.TypeKindStruct, Sites: []parser.Site{site("str", `equals["x"]`, 3)}},
		iface("E"),
		variant("A", "isE", parser.ShapeUnnamed, nil, site("variant", "default", 6)),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(file.Sums) != 0 {
		t.Fatalf("nothing should be generated, got %#v", file.Sums)
	}
	if len(file.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", file.Warnings)
	}
	for _, w := range file.Warnings {
		if w.Kind != KindIgnoredSite {
			t.Fatalf("unexpected warning kind %v", w.Kind)
		}
	}
}

func TestBuild_StandaloneCodec(t *testing.T) {
	file, err := build(t,
		&parser.TypeInfo{Name: "Color", Kind: parser.TypeKindOther, Sites: []parser.Site{site("codec", "as_ref, try_from_string", 3)}},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(file.Codecs) != 1 {
		t.Fatalf("expected 1 codec, got %d", len(file.Codecs))
	}
	want := attr.CodecSettings{UseAsRef: true, Deserialize: attr.TryFromOwnedString}
	if file.Codecs[0].Name != "Color" || file.Codecs[0].Settings != want {
		t.Fatalf("unexpected codec: %#v", file.Codecs[0])
	}
	if file.Empty() {
		t.Fatal("file with a codec should not be empty")
	}

	_, err = build(t,
		&parser.TypeInfo{Name: "Color", Kind: parser.TypeKindOther, Sites: []parser.Site{site("codec", "", 3), site("codec", "as_ref", 4)}},
	)
	requireKind(t, err, KindDuplicateAttribute)
}

func TestBuild_VariantInTwoSumsKeepsOneCodec(t *testing.T) {
	shared := &parser.TypeInfo{
		Name:    "Name",
		Kind:    parser.TypeKindOther,
		Shape:   parser.ShapeUnnamed,
		Fields:  []parser.FieldInfo{{TypeStr: "string"}},
		Methods: []parser.MethodInfo{{Name: "isA"}, {Name: "isB"}},
		Sites:   []parser.Site{site("codec", "", 9)},
	}
	file, err := build(t,
		iface("A", site("compare", "", 1)),
		iface("B", site("compare", "partial_eq=false", 2)),
		shared,
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(file.Sums) != 2 || len(file.Codecs) != 1 {
		t.Fatalf("unexpected file: %d sums, %d codecs", len(file.Sums), len(file.Codecs))
	}
}

func sharedName(line int) *parser.TypeInfo {
	return &parser.TypeInfo{
		Name:    "Name",
		Kind:    parser.TypeKindOther,
		Shape:   parser.ShapeUnnamed,
		Pos:     token.Position{Filename: "ext.go", Line: line, Column: 6},
		Fields:  []parser.FieldInfo{{TypeStr: "string"}},
		Methods: []parser.MethodInfo{{Name: "isA"}, {Name: "isB"}},
	}
}

func TestBuild_SharedVariant(t *testing.T) {
	tests := []struct {
		name string
		a, b parser.Site
		want string
	}{
		{
			name: "two keyed sums",
			a:    site("keys", "name=AKey", 1),
			b:    site("keys", "name=BKey", 2),
			want: "Name is a variant of both A and B; its GetKey method would be generated twice",
		},
		{
			name: "two compared sums",
			a:    site("compare", "", 1),
			b:    site("compare", "fold_case", 2),
			want: "Name is a variant of both A and B; its EqualsStr method would be generated twice",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := build(t, iface("A", tc.a), iface("B", tc.b), sharedName(7))
			d := requireKind(t, err, KindSharedVariant)
			if d.Pos.Line != 7 {
				t.Fatalf("Line = %d, want 7", d.Pos.Line)
			}
			if d.Message != tc.want {
				t.Fatalf("Message = %q, want %q", d.Message, tc.want)
			}
		})
	}
}

func TestBuild_SharedVariantKeyedAndCompared(t *testing.T) {
	file, err := build(t,
		iface("A", site("keys", "name=AKey", 1)),
		iface("B", site("compare", "", 2)),
		sharedName(7),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(file.Sums) != 2 {
		t.Fatalf("len(Sums) = %d, want 2", len(file.Sums))
	}
}

func TestBuild_VariantNameCollision(t *testing.T) {
	tests := []struct {
		name     string
		variants []*parser.TypeInfo
		want     string
	}{
		{
			name:     "Kind",
			variants: []*parser.TypeInfo{variant("Kind", "isE", parser.ShapeUnit, nil)},
			want:     "variant Kind of E: KKind is already generated for the key type",
		},
		{
			name:     "Of",
			variants: []*parser.TypeInfo{variant("Of", "isE", parser.ShapeUnit, nil)},
			want:     "variant Of of E: KOf is already generated for the key type",
		},
		{
			name:     "Values",
			variants: []*parser.TypeInfo{variant("Values", "isE", parser.ShapeUnit, nil)},
			want:     "variant Values of E: KValues is already generated for the key type",
		},
		{
			name: "kind prefix",
			variants: []*parser.TypeInfo{
				variant("Auth", "isE", parser.ShapeUnit, nil),
				variant("KindAuth", "isE", parser.ShapeUnit, nil),
			},
			want: "variants Auth and KindAuth of E both generate KKindAuth",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			types := append([]*parser.TypeInfo{iface("E", site("keys", "name=K", 1))}, tc.variants...)
			_, err := build(t, types...)
			d := requireKind(t, err, KindNameCollision)
			if d.Message != tc.want {
				t.Fatalf("Message = %q, want %q", d.Message, tc.want)
			}
		})
	}
}

func TestBuild_ReservedNamesWithoutKeys(t *testing.T) {
	_, err := build(t,
		iface("E", site("compare", "", 1)),
		variant("Kind", "isE", parser.ShapeUnit, nil),
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
}

func TestBuild_WithTypes(t *testing.T) {
	types := []*parser.TypeInfo{
		{Name: "Config", Kind: parser.TypeKindStruct, Sites: []parser.Site{site("keys", "name=K", 3)}},
		iface("E", site("compare", "", 5)),
	}
	pkg := &parser.PackageInfo{Name: "smtp", Types: types}
	only := []string{"E"}
	file, err := New(WithTypes(only...)).Build(pkg, matcher.NewSumMatcher().MatchSums(pkg, only))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(file.Sums) != 1 || file.Sums[0].Name != "E" {
		t.Fatalf("unexpected sums: %#v", file.Sums)
	}
}

type rejectAll struct{}

func (rejectAll) Name() string { return "reject_all" }

func (rejectAll) Check(sum *SumType, v *Variant, _ *parser.TypeInfo) *Diagnostic {
	return &Diagnostic{Kind: KindNotAVariantType, Message: v.Name + " rejected in " + sum.Name}
}

func TestBuild_WithRules(t *testing.T) {
	types := []*parser.TypeInfo{
		iface("E", site("compare", "", 1)),
		variant("A", "isE", parser.ShapeUnit, nil),
	}
	pkg := &parser.PackageInfo{Name: "smtp", Types: types}
	_, err := New(WithRules(rejectAll{})).Build(pkg, matcher.NewSumMatcher().MatchSums(pkg, nil))
	d := requireKind(t, err, KindNotAVariantType)
	if d.Error() != "A rejected in E" {
		t.Fatalf("Error() = %q", d.Error())
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := &Diagnostic{
		Kind:    KindGrammar,
		Pos:     token.Position{Filename: "ext.go", Line: 3, Column: 17},
		Message: "invalid keys site",
		Cause:   errors.New("unexpected \"x\""),
	}
	if got, want := d.Error(), `ext.go:3:17: invalid keys site: unexpected "x"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if KindGrammar.String() != "grammar" || Kind(99).String() != "unknown" {
		t.Fatal("unexpected Kind names")
	}
}
