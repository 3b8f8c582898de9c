package cli

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"cstamp/internal/history"
)

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()
var historyLimitFlag int

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history db",
		Short: "Show recorded stamp modifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args[0])
		},
	}
	cmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "maximum number of entries to show")
	return cmd
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, dbPath string) error {
	db, err := history.NewReadonlyDB(dbPath, 1000)
	if err != nil {
		return err
	}
	defer db.Close()

	stamps, err := db.ListStamps(historyLimitFlag)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Applied", "File", "Scope", "Variable", "Old", "New"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, s := range stamps {
		scope := s.Namespace
		if scope == "" {
			scope = "(global)"
		}
		table.Append([]string{
			time.Unix(s.AppliedAt, 0).Format(time.DateTime),
			s.File,
			scope,
			s.Variable,
			s.OldValue,
			s.NewValue,
		})
	}
	table.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", len(stamps))
	return nil
}
