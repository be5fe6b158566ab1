package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/seitarof/gen-enumkeys/internal/attr"
	"github.com/seitarof/gen-enumkeys/internal/matcher"
	"github.com/seitarof/gen-enumkeys/internal/parser"
)

var siteNames = []string{attr.SiteKeys, attr.SiteCompare, attr.SiteVariant, attr.SiteStr, attr.SiteCodec}

// Builder merges parsed declarations and their sites into a File.
type Builder interface {
	Build(pkg *parser.PackageInfo, sums []*matcher.SumType) (*File, error)
}

// Option configures a Builder.
type Option func(*builderImpl)

// WithTypes restricts the build to the named types. Sites on other types
// are neither validated nor reported.
func WithTypes(names ...string) Option {
	return func(b *builderImpl) {
		b.only = names
	}
}

// WithRules replaces the variant rule chain.
func WithRules(rules ...Rule) Option {
	return func(b *builderImpl) {
		b.rules = rules
	}
}

type builderImpl struct {
	rules []Rule
	only  []string
}

// New returns default builder using DefaultRules.
func New(opts ...Option) Builder {
	b := &builderImpl{rules: DefaultRules()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// pass holds the state of one Build call.
type pass struct {
	*builderImpl
	file    *File
	claimed map[*parser.TypeInfo]bool
	// visited marks variants already read once; a type implementing two
	// sum types contributes its codec site only once.
	visited map[*parser.TypeInfo]bool
	// keyed and compared are the sum types built so far that give their
	// variants key methods or EqualsStr methods.
	keyed    []*matcher.SumType
	compared []*matcher.SumType
}

func (b *builderImpl) Build(pkg *parser.PackageInfo, sums []*matcher.SumType) (*File, error) {
	p := &pass{
		builderImpl: b,
		file: &File{
			Package: pkg.Name,
			PkgPath: pkg.PkgPath,
			Dir:     pkg.Dir,
		},
		claimed: map[*parser.TypeInfo]bool{},
		visited: map[*parser.TypeInfo]bool{},
	}

	byDecl := make(map[*parser.TypeInfo]*matcher.SumType, len(sums))
	for _, s := range sums {
		if !annotated(s) {
			continue
		}
		byDecl[s.Decl] = s
		for _, v := range s.Variants {
			p.claimed[v.Type] = true
		}
	}

	for _, t := range pkg.Types {
		if s, ok := byDecl[t]; ok {
			if err := p.buildSum(s); err != nil {
				return nil, err
			}
			continue
		}
		if p.claimed[t] || len(t.Sites) == 0 || !p.selected(t) {
			continue
		}
		if err := p.buildOther(t); err != nil {
			return nil, err
		}
	}
	return p.file, nil
}

func (p *pass) selected(t *parser.TypeInfo) bool {
	return len(p.only) == 0 || slices.Contains(p.only, t.Name)
}

func annotated(s *matcher.SumType) bool {
	if len(s.Decl.Sites) > 0 {
		return true
	}
	for _, v := range s.Variants {
		for _, site := range v.Type.Sites {
			if site.Name == attr.SiteVariant || site.Name == attr.SiteStr {
				return true
			}
		}
	}
	return false
}

func (p *pass) buildSum(s *matcher.SumType) error {
	decl := s.Decl
	st := &SumType{Name: decl.Name, Pos: decl.Pos}

	if decl.Generic {
		return newDiagnostic(KindNotAVariantType, decl.Pos,
			fmt.Sprintf("%s is generic; variant types cannot have type parameters", decl.Name), nil)
	}

	for _, site := range decl.Sites {
		switch site.Name {
		case attr.SiteKeys:
			if st.Keys != nil {
				return duplicate(site, decl.Name)
			}
			opts, err := attr.ParseTypeOptions(site.Args)
			if err != nil {
				return grammar(site, err)
			}
			if opts.KeyTypeName == "" {
				return newDiagnostic(KindMissingKeyTypeName, site.Pos,
					fmt.Sprintf("keys site on %s needs name=KeyType", decl.Name), nil)
			}
			st.Keys = &opts
		case attr.SiteCompare:
			if st.Compare != nil {
				return duplicate(site, decl.Name)
			}
			settings, err := attr.ParseCompareSettings(site.Args)
			if err != nil {
				return grammar(site, err)
			}
			st.Compare = &settings
		case attr.SiteCodec:
			return newDiagnostic(KindNotAConcreteType, site.Pos,
				fmt.Sprintf("codec site on interface %s; use the codec clause of keys", decl.Name), nil)
		case attr.SiteVariant, attr.SiteStr:
			p.ignore(site, decl.Name)
		default:
			return unknownSite(site)
		}
	}

	raw := make(map[*Variant]attr.CompareLists, len(s.Variants))
	hasLists := false
	for _, ref := range s.Variants {
		v, lists, err := p.buildVariant(st, ref)
		if err != nil {
			return err
		}
		if lists != nil {
			raw[v] = *lists
			hasLists = true
		}
		st.Variants = append(st.Variants, v)
		if v.IsDefault() {
			st.Default = v
		}
	}

	if st.Compare == nil && hasLists {
		settings := attr.DefaultCompareSettings()
		st.Compare = &settings
	}
	if st.Compare != nil {
		for _, v := range st.Variants {
			v.Lists = finalizeLists(v, raw[v], *st.Compare)
		}
	}

	if st.Keys == nil && st.Compare == nil {
		p.file.Warnings = append(p.file.Warnings, newDiagnostic(KindIgnoredSite, decl.Pos,
			fmt.Sprintf("%s has variant sites but neither keys nor compare; nothing generated", decl.Name), nil))
		return nil
	}
	if err := p.claimVariants(s, st); err != nil {
		return err
	}
	p.file.Sums = append(p.file.Sums, st)
	return nil
}

// claimVariants rejects a variant that already receives the same methods
// from another sum type.
func (p *pass) claimVariants(s *matcher.SumType, st *SumType) error {
	keyed := st.Keys != nil
	compared := st.Compare != nil && st.Compare.PartialEq
	for _, ref := range s.Variants {
		if keyed {
			if owner := matcher.VariantOf(p.keyed, ref.Type); owner != nil {
				return sharedVariant(ref, owner, s, "GetKey")
			}
		}
		if compared {
			if owner := matcher.VariantOf(p.compared, ref.Type); owner != nil {
				return sharedVariant(ref, owner, s, "EqualsStr")
			}
		}
	}
	if keyed {
		p.keyed = append(p.keyed, s)
	}
	if compared {
		p.compared = append(p.compared, s)
	}
	return nil
}

func sharedVariant(ref matcher.VariantRef, first, second *matcher.SumType, method string) *Diagnostic {
	return newDiagnostic(KindSharedVariant, ref.Type.Pos,
		fmt.Sprintf("%s is a variant of both %s and %s; its %s method would be generated twice",
			ref.Receiver(), first.Decl.Name, second.Decl.Name, method), nil)
}

// buildVariant reads the sites of one variant. The returned lists are nil
// when the variant has no str site.
func (p *pass) buildVariant(st *SumType, ref matcher.VariantRef) (*Variant, *attr.CompareLists, error) {
	t := ref.Type
	v := &Variant{
		Name:    t.Name,
		Pos:     t.Pos,
		Pointer: ref.Pointer,
		Shape:   t.Shape,
	}

	firstVisit := !p.visited[t]
	p.visited[t] = true

	var lists *attr.CompareLists
	seenOptions := false
	for _, site := range t.Sites {
		switch site.Name {
		case attr.SiteVariant:
			if seenOptions {
				return nil, nil, duplicate(site, t.Name)
			}
			seenOptions = true
			opts, err := attr.ParseVariantOptions(site.Args)
			if err != nil {
				return nil, nil, grammar(site, err)
			}
			v.Options = opts
			v.optionsPos = site.Pos
		case attr.SiteStr:
			parsed, err := attr.ParseCompareLists(site.Args)
			if err != nil {
				return nil, nil, grammar(site, err)
			}
			if lists == nil {
				lists = &attr.CompareLists{}
			}
			lists.Equals = append(lists.Equals, parsed.Equals...)
			lists.Contains = append(lists.Contains, parsed.Contains...)
		case attr.SiteKeys, attr.SiteCompare:
			return nil, nil, notAVariantType(site, t)
		case attr.SiteCodec:
			if !firstVisit {
				continue
			}
			if err := p.addCodec(t, site); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, unknownSite(site)
		}
	}

	for _, rule := range p.rules {
		if d := rule.Check(st, v, t); d != nil {
			return nil, nil, d
		}
	}
	if v.IsDefault() && v.Shape == parser.ShapeNamed {
		v.Carrier = carrierName(v)
	}
	return v, lists, nil
}

func (p *pass) buildOther(t *parser.TypeInfo) error {
	for _, site := range t.Sites {
		switch site.Name {
		case attr.SiteKeys, attr.SiteCompare:
			return notAVariantType(site, t)
		case attr.SiteCodec:
			if err := p.addCodec(t, site); err != nil {
				return err
			}
		case attr.SiteVariant, attr.SiteStr:
			p.ignore(site, t.Name)
		default:
			return unknownSite(site)
		}
	}
	return nil
}

func (p *pass) addCodec(t *parser.TypeInfo, site parser.Site) error {
	if t.Kind == parser.TypeKindInterface || t.Generic || t.Alias {
		return newDiagnostic(KindNotAConcreteType, site.Pos,
			fmt.Sprintf("codec site on %s; methods can only be generated for a concrete, non-generic defined type", t.Name), nil)
	}
	for _, c := range p.file.Codecs {
		if c.Name == t.Name {
			return duplicate(site, t.Name)
		}
	}
	settings, err := attr.ParseCodecSettings(site.Args)
	if err != nil {
		return grammar(site, err)
	}
	p.file.Codecs = append(p.file.Codecs, &CodecType{Name: t.Name, Pos: t.Pos, Settings: settings})
	return nil
}

func (p *pass) ignore(site parser.Site, typeName string) {
	p.file.Warnings = append(p.file.Warnings, newDiagnostic(KindIgnoredSite, site.Pos,
		fmt.Sprintf("%s site on %s ignored: not a variant of an annotated type", site.Name, typeName), nil))
}

func grammar(site parser.Site, err error) *Diagnostic {
	pos := site.Pos
	var gerr *attr.GrammarError
	if errors.As(err, &gerr) {
		pos = site.At(gerr.Offset)
	}
	return newDiagnostic(KindGrammar, pos, fmt.Sprintf("invalid %s site", site.Name), err)
}

func duplicate(site parser.Site, typeName string) *Diagnostic {
	return newDiagnostic(KindDuplicateAttribute, site.Pos,
		fmt.Sprintf("%s has more than one %s site", typeName, site.Name), nil)
}

func unknownSite(site parser.Site) *Diagnostic {
	return newDiagnostic(KindGrammar, site.Pos,
		fmt.Sprintf("unknown site %q, expected one of: %s", site.Name, strings.Join(siteNames, ", ")), nil)
}

func notAVariantType(site parser.Site, t *parser.TypeInfo) *Diagnostic {
	reason := "not an interface"
	switch {
	case t.Kind == parser.TypeKindInterface && t.Generic:
		reason = "a generic interface"
	case t.Kind == parser.TypeKindInterface:
		reason = "an interface without an unexported marker method"
	}
	return newDiagnostic(KindNotAVariantType, site.Pos,
		fmt.Sprintf("%s site on %s: %s is %s", site.Name, t.Name, t.Name, reason), nil)
}

// finalizeLists registers the variant name after the explicit equals
// literals, folds case when requested and drops repeated literals.
func finalizeLists(v *Variant, raw attr.CompareLists, settings attr.CompareSettings) attr.CompareLists {
	equals := slices.Clone(raw.Equals)
	if settings.IncludeVariant {
		equals = append(equals, v.Name)
	}
	contains := slices.Clone(raw.Contains)
	if settings.FoldCase {
		lower(equals)
		lower(contains)
	}
	return attr.CompareLists{Equals: dedupe(equals), Contains: dedupe(contains)}
}

func lower(list []string) {
	for i, s := range list {
		list[i] = strings.ToLower(s)
	}
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
