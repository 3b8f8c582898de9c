package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"cstamp/internal/cpp"
	"cstamp/internal/rewrite"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list file [namespace]",
		Short: "List literal-initialized variables in a C++ file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace := ""
			if len(args) == 2 {
				namespace = args[1]
			}
			return runList(cmd, args[0], namespace)
		},
	}
	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, file, namespace string) error {
	parser := cpp.NewParser(clangArgsFlag...)
	defer parser.Close()

	modifier, err := rewrite.NewModifier(cmd.Context(), file, parser, nil)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Variable", "Kind", "Value", "Offsets"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})

	for _, c := range modifier.Constants(namespace) {
		table.Append([]string{
			c.Name,
			c.Kind.String(),
			c.Current,
			fmt.Sprintf("%d-%d", c.InitRange.Start, c.InitRange.End),
		})
	}
	table.Render()
	return nil
}
