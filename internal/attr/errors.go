package attr

import (
	"fmt"
	"strings"
)

// GrammarError reports an unrecognized or malformed clause.
type GrammarError struct {
	// Offset is the byte offset of the offending token in the site text.
	Offset int
	// Found is the offending token, empty at end of input.
	Found string
	// Expected lists what was valid at Offset.
	Expected []string
	// Message overrides the generated wording, used for lexical errors.
	Message string
}

func (e *GrammarError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	found := "end of attribute"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	if len(e.Expected) == 0 {
		return "unexpected " + found
	}
	return fmt.Sprintf("unexpected %s, expected one of: %s", found, strings.Join(e.Expected, ", "))
}
