package attr

import (
	gotoken "go/token"
	"strconv"
)

type clause struct {
	keyword string
	parse   func(c *cursor) error
}

func keywords(clauses []clause) []string {
	out := make([]string, 0, len(clauses))
	for _, cl := range clauses {
		out = append(out, cl.keyword)
	}
	return out
}

// parseClauses is the shared loop: peek keyword, dispatch, optionally consume
// a separating comma, until the cursor is exhausted.
func parseClauses(c *cursor, clauses []clause) error {
	for !c.done() {
		t := c.peek()
		if t.tok != gotoken.IDENT {
			return c.unexpected(keywords(clauses)...)
		}
		var matched *clause
		for i := range clauses {
			if clauses[i].keyword == t.lit {
				matched = &clauses[i]
				break
			}
		}
		if matched == nil {
			return c.unexpected(keywords(clauses)...)
		}
		c.next()
		if err := matched.parse(c); err != nil {
			return err
		}
		c.accept(gotoken.COMMA)
	}
	return nil
}

func flag(dst *bool) func(c *cursor) error {
	return func(c *cursor) error {
		if !c.accept(gotoken.ASSIGN) {
			*dst = true
			return nil
		}
		t := c.peek()
		if t.tok == gotoken.IDENT && (t.lit == "true" || t.lit == "false") {
			c.next()
			*dst = t.lit == "true"
			return nil
		}
		return c.unexpected("true", "false")
	}
}

func ident(dst *string) func(c *cursor) error {
	return func(c *cursor) error {
		if _, err := c.expect(gotoken.ASSIGN); err != nil {
			return err
		}
		t, err := c.expect(gotoken.IDENT)
		if err != nil {
			return err
		}
		*dst = t.lit
		return nil
	}
}

func stringList(dst *[]string) func(c *cursor) error {
	return func(c *cursor) error {
		if _, err := c.expect(gotoken.LBRACK); err != nil {
			return err
		}
		list := []string{}
		for !c.accept(gotoken.RBRACK) {
			t := c.peek()
			if t.tok != gotoken.STRING {
				return c.unexpected("string literal", "]")
			}
			c.next()
			s, err := strconv.Unquote(t.lit)
			if err != nil {
				return &GrammarError{Offset: t.off, Found: t.lit, Message: "invalid string literal " + t.lit}
			}
			list = append(list, s)
			if c.accept(gotoken.COMMA) {
				continue
			}
			if _, err := c.expect(gotoken.RBRACK); err != nil {
				return err
			}
			break
		}
		*dst = list
		return nil
	}
}

func rename(dst *Rename) func(c *cursor) error {
	return func(c *cursor) error {
		if _, err := c.expect(gotoken.ASSIGN); err != nil {
			return err
		}
		expected := make([]string, 0, len(renameRules))
		for _, r := range renameRules {
			expected = append(expected, string(r))
		}
		t := c.peek()
		value := t.lit
		switch t.tok {
		case gotoken.IDENT:
		case gotoken.STRING:
			if s, err := strconv.Unquote(t.lit); err == nil {
				value = s
			}
		default:
			return c.unexpected(expected...)
		}
		for _, r := range renameRules {
			if string(r) == value {
				c.next()
				*dst = r
				return nil
			}
		}
		return c.unexpected(expected...)
	}
}

func codecClauses(settings *CodecSettings) []clause {
	return []clause{
		{"as_ref", flag(&settings.UseAsRef)},
		{"from_str", func(*cursor) error {
			settings.Deserialize = FromString
			return nil
		}},
		{"try_from_string", func(*cursor) error {
			settings.Deserialize = TryFromOwnedString
			return nil
		}},
	}
}

// ParseTypeOptions parses a keys site. The key type name is not required
// here; its absence is a validation error reported by the model builder.
func ParseTypeOptions(src string) (TypeOptions, error) {
	c, err := newCursor(src)
	if err != nil {
		return TypeOptions{}, err
	}
	var opts TypeOptions
	clauses := []clause{
		{"name", ident(&opts.KeyTypeName)},
		{"borrowed", flag(&opts.StoreDefaultBorrowed)},
		{"common", flag(&opts.DeriveCommon)},
		{"strings", flag(&opts.DeriveStrings)},
		{"rename", rename(&opts.Rename)},
		{"codec", func(c *cursor) error {
			settings := &CodecSettings{}
			if c.peek().tok == gotoken.LPAREN {
				sub, err := c.group()
				if err != nil {
					return err
				}
				if err := parseClauses(sub, codecClauses(settings)); err != nil {
					return err
				}
			}
			opts.Codec = settings
			return nil
		}},
	}
	if err := parseClauses(c, clauses); err != nil {
		return TypeOptions{}, err
	}
	// String methods supply AppendText, so the codec can serialize by reference.
	if opts.DeriveStrings && opts.Codec != nil {
		opts.Codec.UseAsRef = true
	}
	return opts, nil
}

// ParseVariantOptions parses a variant site.
func ParseVariantOptions(src string) (VariantOptions, error) {
	c, err := newCursor(src)
	if err != nil {
		return VariantOptions{}, err
	}
	var opts VariantOptions
	clauses := []clause{
		{"default", func(c *cursor) error {
			opts.IsDefault = true
			if c.peek().tok != gotoken.ASSIGN {
				return nil
			}
			return ident(&opts.CarrierField)(c)
		}},
	}
	if err := parseClauses(c, clauses); err != nil {
		return VariantOptions{}, err
	}
	return opts, nil
}

// ParseCompareSettings parses a type-level compare site. Unset flags keep
// the values of DefaultCompareSettings.
func ParseCompareSettings(src string) (CompareSettings, error) {
	c, err := newCursor(src)
	if err != nil {
		return CompareSettings{}, err
	}
	settings := DefaultCompareSettings()
	clauses := []clause{
		{"partial_eq", flag(&settings.PartialEq)},
		{"fold_case", flag(&settings.FoldCase)},
		{"include_variant", flag(&settings.IncludeVariant)},
	}
	if err := parseClauses(c, clauses); err != nil {
		return CompareSettings{}, err
	}
	return settings, nil
}

// ParseCompareLists parses a str site.
func ParseCompareLists(src string) (CompareLists, error) {
	c, err := newCursor(src)
	if err != nil {
		return CompareLists{}, err
	}
	var lists CompareLists
	clauses := []clause{
		{"equals", stringList(&lists.Equals)},
		{"contains", stringList(&lists.Contains)},
	}
	if err := parseClauses(c, clauses); err != nil {
		return CompareLists{}, err
	}
	return lists, nil
}

// ParseCodecSettings parses a standalone codec site.
func ParseCodecSettings(src string) (CodecSettings, error) {
	c, err := newCursor(src)
	if err != nil {
		return CodecSettings{}, err
	}
	var settings CodecSettings
	if err := parseClauses(c, codecClauses(&settings)); err != nil {
		return CodecSettings{}, err
	}
	return settings, nil
}
