// Package placeholder expands {name} tokens inside requested values.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Default strftime patterns for the date and time placeholders.
const (
	DefaultDateFormat = "%d %b %Y"
	DefaultTimeFormat = "%I:%M:%S %p %Z"
)

// Context carries the state expansion functions may draw on. CurrentValue
// is set immediately before each expansion and holds the pre-edit text of
// the initializer being modified, unquoted for strings.
type Context struct {
	Now          time.Time
	DateFormat   string
	TimeFormat   string
	Timezone     string
	CurrentValue string
}

// Func produces the replacement text for one placeholder.
type Func func(*Context) (string, error)

// Table maps placeholder names to their expansion functions. The table is
// closed: any name not present is an error at expansion time.
type Table map[string]Func

// DefaultTable returns the built-in placeholder set.
func DefaultTable() Table {
	return Table{
		"date": func(ctx *Context) (string, error) {
			return strftime.Format(ctx.DateFormat, ctx.Now), nil
		},
		"time": func(ctx *Context) (string, error) {
			return strftime.Format(ctx.TimeFormat, ctx.Now), nil
		},
		"++": func(ctx *Context) (string, error) {
			if ctx.CurrentValue == "" {
				return "1", nil
			}
			n, err := strconv.ParseInt(ctx.CurrentValue, 10, 64)
			if err != nil {
				return "", fmt.Errorf("cannot increment non-numeric value %q: %w", ctx.CurrentValue, err)
			}
			return strconv.FormatInt(n+1, 10), nil
		},
	}
}

var tokenPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Expander substitutes placeholders in requested values against a context.
type Expander struct {
	Ctx   *Context
	table Table
}

// NewExpander creates an Expander. A nil table selects the default set.
func NewExpander(ctx *Context, table Table) *Expander {
	if table == nil {
		table = DefaultTable()
	}
	return &Expander{Ctx: ctx, table: table}
}

// Expand replaces every {name} token in value, left to right, in a single
// pass. Produced text is not rescanned for further placeholders. An unknown
// name is a hard error. A value without braces is returned unchanged.
func (e *Expander) Expand(value string) (string, error) {
	matches := tokenPattern.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value, nil
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		name := value[m[2]:m[3]]
		fn, ok := e.table[name]
		if !ok {
			return "", fmt.Errorf("unknown placeholder: %s", name)
		}
		text, err := fn(e.Ctx)
		if err != nil {
			return "", err
		}
		out.WriteString(value[last:m[0]])
		out.WriteString(text)
		last = m[1]
	}
	out.WriteString(value[last:])
	return out.String(), nil
}
