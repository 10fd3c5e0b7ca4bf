package coerce

import (
	"strings"

	"github.com/maksimkurb/configurator/src/internal/errors"
)

// Accepted boolean tokens, matched case-insensitively. Any other string is
// rejected with InvalidBoolean.
var (
	truthy = []string{"true", "yes", "y", "t", "1", "on"}
	falsy  = []string{"false", "no", "n", "f", "0", "off"}
)

var boolTokens = func() map[string]bool {
	m := make(map[string]bool, len(truthy)+len(falsy))
	for _, s := range truthy {
		m[s] = true
	}
	for _, s := range falsy {
		m[s] = false
	}
	return m
}()

// ParseBool parses s using the truthy/falsy token sets.
func ParseBool(s string) (bool, error) {
	b, ok := boolTokens[strings.ToLower(s)]
	if !ok {
		return false, errors.NewInvalidBoolean(s)
	}
	return b, nil
}

// BoolTokens returns copies of the accepted truthy and falsy tokens.
func BoolTokens() (truthyTokens, falsyTokens []string) {
	return append([]string(nil), truthy...), append([]string(nil), falsy...)
}
