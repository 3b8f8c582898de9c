package placeholder_test

import (
	"strings"
	"testing"
	"time"

	"cstamp/internal/placeholder"
)

// fixedContext returns a context pinned to a known instant so date and time
// expansions are deterministic.
func fixedContext() *placeholder.Context {
	return &placeholder.Context{
		Now:        time.Date(2024, 1, 15, 14, 30, 45, 0, time.UTC),
		DateFormat: "%Y-%m-%d",
		TimeFormat: "%H:%M:%S",
		Timezone:   "UTC",
	}
}

func TestExpandDate(t *testing.T) {
	e := placeholder.NewExpander(fixedContext(), nil)

	got, err := e.Expand("{date}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-01-15" {
		t.Errorf("expected \"2024-01-15\", got %q", got)
	}
}

func TestExpandTime(t *testing.T) {
	e := placeholder.NewExpander(fixedContext(), nil)

	got, err := e.Expand("{time}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "14:30:45" {
		t.Errorf("expected \"14:30:45\", got %q", got)
	}
}

func TestExpandIncrement(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"", "1"},
		{"41", "42"},
		{"-3", "-2"},
	}
	for _, c := range cases {
		ctx := fixedContext()
		ctx.CurrentValue = c.current
		e := placeholder.NewExpander(ctx, nil)

		got, err := e.Expand("{++}")
		if err != nil {
			t.Fatalf("unexpected error for current value %q: %v", c.current, err)
		}
		if got != c.want {
			t.Errorf("current value %q: expected %q, got %q", c.current, c.want, got)
		}
	}
}

func TestExpandIncrementNonNumeric(t *testing.T) {
	ctx := fixedContext()
	ctx.CurrentValue = "unknown"
	e := placeholder.NewExpander(ctx, nil)

	if _, err := e.Expand("{++}"); err == nil {
		t.Fatal("expected error for non-numeric current value, got nil")
	}
}

func TestExpandUnknownPlaceholder(t *testing.T) {
	e := placeholder.NewExpander(fixedContext(), nil)

	_, err := e.Expand("{bogus}")
	if err == nil {
		t.Fatal("expected error for unknown placeholder, got nil")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the placeholder, got %q", err)
	}
}

func TestExpandNoBraces(t *testing.T) {
	// A restricted empty table proves the table is never consulted when the
	// value carries no placeholders.
	e := placeholder.NewExpander(fixedContext(), placeholder.Table{})

	got, err := e.Expand("plain value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain value" {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestExpandMixedText(t *testing.T) {
	e := placeholder.NewExpander(fixedContext(), nil)

	got, err := e.Expand("built {date} at {time} UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "built 2024-01-15 at 14:30:45 UTC" {
		t.Errorf("unexpected expansion %q", got)
	}
}

func TestExpandCustomTable(t *testing.T) {
	table := placeholder.Table{
		"host": func(*placeholder.Context) (string, error) { return "buildbox", nil },
	}
	e := placeholder.NewExpander(fixedContext(), table)

	got, err := e.Expand("{host}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "buildbox" {
		t.Errorf("expected \"buildbox\", got %q", got)
	}

	// The default names are gone from a restricted table.
	if _, err := e.Expand("{date}"); err == nil {
		t.Fatal("expected error for name missing from restricted table")
	}
}
