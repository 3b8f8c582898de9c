// Package cli provides the cstamp command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"cstamp/internal/cpp"
	"cstamp/internal/history"
	"cstamp/internal/placeholder"
	"cstamp/internal/rewrite"
)

var (
	verboseFlag    bool
	timezoneFlag   string
	dateFormatFlag string
	timeFormatFlag string
	clangArgsFlag  []string
	historyFlag    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cstamp file [namespace] VAR=VALUE...",
		Short: "Rewrite literal constants in a C++ file",
		Long: `Cstamp locates literal-initialized variable declarations in a C++ file,
optionally scoped to a namespace, and rewrites their initializers in place.
Every other byte of the file is preserved exactly.

Values may contain placeholders:
  {date}  current date, rendered with --date_format
  {time}  current time, rendered with --time_format
  {++}    the variable's current value incremented by one`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			verbosity := 1
			if verboseFlag {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			file, namespace, mods, err := parseTargets(args)
			if err != nil {
				return err
			}
			return runModify(cmd.Context(), file, namespace, mods)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	cmd.PersistentFlags().StringArrayVar(&clangArgsFlag, "clang-args", nil, "extra compiler arguments forwarded to the parser (repeatable)")
	cmd.Flags().StringVar(&timezoneFlag, "timezone", "", "timezone for date/time expansion (default: system timezone)")
	cmd.Flags().StringVar(&dateFormatFlag, "date_format", placeholder.DefaultDateFormat, "strftime format for {date}")
	cmd.Flags().StringVar(&timeFormatFlag, "time_format", placeholder.DefaultTimeFormat, "strftime format for {time}")
	cmd.Flags().StringVar(&historyFlag, "history", "", "record applied changes in the given SQLite database")

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseTargets splits positional arguments into file, namespace and
// VAR=VALUE modifications. A namespace argument containing '=' is really a
// modification, so it is reclassified and the scope stays global.
func parseTargets(args []string) (string, string, []rewrite.Modification, error) {
	file := args[0]
	rest := args[1:]

	namespace := ""
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		namespace = rest[0]
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", "", nil, fmt.Errorf("no VAR=VALUE modifications given")
	}

	mods := make([]rewrite.Modification, 0, len(rest))
	for _, arg := range rest {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return "", "", nil, fmt.Errorf("invalid modification %q, expected VAR=VALUE", arg)
		}
		mods = append(mods, rewrite.Modification{
			Namespace: namespace,
			Variable:  strings.TrimSpace(name),
			NewValue:  strings.TrimSpace(value),
		})
	}
	return file, namespace, mods, nil
}

func runModify(ctx context.Context, file, namespace string, mods []rewrite.Modification) error {
	loc, err := loadLocation(timezoneFlag)
	if err != nil {
		return err
	}

	expander := placeholder.NewExpander(&placeholder.Context{
		Now:        time.Now().In(loc),
		DateFormat: dateFormatFlag,
		TimeFormat: timeFormatFlag,
		Timezone:   loc.String(),
	}, nil)

	parser := cpp.NewParser(clangArgsFlag...)
	defer parser.Close()

	modifier, err := rewrite.NewModifier(ctx, file, parser, expander)
	if err != nil {
		return err
	}

	applied, err := modifier.Apply(mods)
	if err != nil {
		return err
	}

	if historyFlag != "" {
		if err := recordHistory(historyFlag, file, applied); err != nil {
			return err
		}
	}
	return nil
}

// loadLocation resolves an IANA timezone name, defaulting to the system
// timezone when unset. Resolution failures abort before parsing begins.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone: %s", name)
	}
	return loc, nil
}

func recordHistory(dbPath, file string, applied []rewrite.AppliedChange) error {
	db, err := history.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now().Unix()
	stamps := make([]history.Stamp, 0, len(applied))
	for _, change := range applied {
		stamps = append(stamps, history.Stamp{
			File:      file,
			Namespace: change.Namespace,
			Variable:  change.Variable,
			OldValue:  change.OldValue,
			NewValue:  change.NewValue,
			AppliedAt: now,
		})
	}
	return db.RecordStamps(stamps)
}
