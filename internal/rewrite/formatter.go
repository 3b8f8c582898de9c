package rewrite

import (
	"fmt"
	"strconv"
	"strings"

	"cstamp/internal/placeholder"
)

// formatValue renders the replacement token for a literal of the given
// kind. currentText is the initializer's present text in the file; it seeds
// the expansion context (unquoted for strings) before value is expanded.
func formatValue(expander *placeholder.Expander, value string, kind LiteralKind, currentText string) (string, error) {
	if expander != nil {
		expander.Ctx.CurrentValue = unquote(currentText)
		expanded, err := expander.Expand(value)
		if err != nil {
			return "", err
		}
		value = expanded
	}

	switch kind {
	case LiteralInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", fmt.Errorf("%q is not a valid integer: %w", value, err)
		}
		return strconv.FormatInt(n, 10), nil
	case LiteralFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("%q is not a valid floating-point number: %w", value, err)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case LiteralString:
		// Embedded quotes pass through untouched.
		return `"` + value + `"`, nil
	}
	return "", fmt.Errorf("unsupported literal kind: %s", kind)
}

// unquote strips the surrounding double quotes from a string literal token.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
