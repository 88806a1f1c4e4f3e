package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/internal/cli"
	"github.com/pluqqy/cmdk/pkg/palette"
)

// NewVisitCommand creates the visit command
func NewVisitCommand() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "visit <href>",
		Short: "Record a page visit",
		Long: `Record that a page was visited so it ranks higher in later searches.

The title is taken from the navigation entry with the same href unless
--title is given.

Examples:
  cmdk visit /settings/billing
  cmdk visit /reports/q3 --title "Q3 report"`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateHref(args[0])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext()
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			href := args[0]
			name := title
			if name == "" {
				name = href
				if items, err := ctx.NavigationItems(); err == nil {
					for _, item := range items {
						if item.Href == href {
							name = item.Title
							break
						}
					}
				}
			}

			p, err := ctx.NewPalette(cli.PaletteOptions{NoTasks: true})
			if err != nil {
				return err
			}
			p.Select(palette.Candidate{Kind: palette.KindNavigation, Title: name, Href: href})

			cli.PrintSuccess("Recorded visit to %s (%s)", name, href)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title to remember")

	return cmd
}
