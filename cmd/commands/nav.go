package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/internal/cli"
	"github.com/pluqqy/cmdk/pkg/navigation"
)

// NewNavCommand creates the nav command
func NewNavCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "List the searchable navigation entries",
		Long: `Flatten .cmdk/navigation.yaml (or navigation.jsonc) into the list the
palette searches. Disabled entries and group headers are left out; each
entry shows its breadcrumb.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext()
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			items, err := ctx.NavigationItems()
			if err != nil {
				return err
			}
			if items == nil {
				items = []navigation.Item{}
			}

			format := outputFormat(cmd)
			if format != string(cli.FormatText) {
				return cli.OutputResults(cmd.OutOrStdout(), format, items)
			}

			if len(items) == 0 {
				cli.PrintInfo("Navigation is empty")
				return nil
			}

			table := cli.NewTableFormatter(cmd.OutOrStdout())
			table.Header("PATH", "HREF", "FLAGS")
			for _, item := range items {
				flags := ""
				if item.Experimental {
					flags = "experimental"
				}
				table.Row(navigation.Breadcrumb(item, " › "), item.Href, flags)
			}
			table.Flush()
			return nil
		},
	}

	return cmd
}
