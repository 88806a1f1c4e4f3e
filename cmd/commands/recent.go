package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/internal/cli"
	"github.com/pluqqy/cmdk/pkg/recent"
)

// RecentItemOutput represents one recent entry
type RecentItemOutput struct {
	Type      string    `json:"type" yaml:"type"`
	Title     string    `json:"title" yaml:"title"`
	Href      string    `json:"href,omitempty" yaml:"href,omitempty"`
	TaskID    string    `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Board     string    `json:"board,omitempty" yaml:"board,omitempty"`
	VisitedAt time.Time `json:"visited_at" yaml:"visited_at"`
}

// now is the clock used for relative ages.
var now = time.Now

// NewRecentCommand creates the recent command
func NewRecentCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently visited pages, tasks and searches",
		Long: `Show the most recent pages, tasks and searches, newest first.

Entries older than 30 days are hidden.

Examples:
  # Show the last few items
  cmdk recent

  # Show up to 20 items as YAML
  cmdk recent --limit 20 -o yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateLimit("limit", limit)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext()
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			n := limit
			if n == 0 {
				n = ctx.LoadSettingsWithDefault().Recent.Limit
			}
			return renderRecent(cmd, ctx.Store().Items(n))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum items to show (default from settings)")
	cmd.AddCommand(newRecentClearCommand())

	return cmd
}

func newRecentClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [pages|tasks|searches]",
		Short: "Forget recent items",
		Long: `Forget all recent items, or only one kind of them.

Remembered task defaults are kept.

Examples:
  cmdk recent clear
  cmdk recent clear searches --yes`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"pages", "tasks", "searches"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind recent.Kind
			if len(args) == 1 {
				k, err := recent.ParseKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}

			ctx, err := projectContext()
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			what := "all recent items"
			if kind != "" {
				what = "recent " + plural(kind)
			}
			ok, err := cli.Confirm(fmt.Sprintf("Clear %s?", what), false)
			if err != nil {
				return err
			}
			if !ok {
				cli.PrintInfo("Nothing cleared")
				return nil
			}

			store := ctx.Store()
			if kind == "" {
				store.ClearAll()
			} else {
				store.Clear(kind)
			}
			cli.PrintSuccess("Cleared %s", what)
			return nil
		},
	}
}

func renderRecent(cmd *cobra.Command, items []recent.Item) error {
	out := make([]RecentItemOutput, 0, len(items))
	for _, item := range items {
		entry := RecentItemOutput{
			Type:      string(item.Kind()),
			Title:     recent.Title(item),
			VisitedAt: item.Time().UTC(),
		}
		switch it := item.(type) {
		case *recent.Page:
			entry.Href = it.Href
		case *recent.Task:
			entry.TaskID = it.TaskID
			entry.Board = it.BoardName
		}
		out = append(out, entry)
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, out)
	}

	if len(out) == 0 {
		cli.PrintInfo("No recent items")
		return nil
	}

	current := now()
	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("TYPE", "TITLE", "DETAIL", "WHEN")
	for _, e := range out {
		detail := e.Href
		if e.Type == string(recent.KindTask) {
			detail = e.TaskID
		}
		table.Row(e.Type, cli.TruncateString(e.Title, 40), detail, cli.FormatAge(e.VisitedAt, current))
	}
	table.Flush()
	return nil
}

func plural(kind recent.Kind) string {
	if kind == recent.KindSearch {
		return "searches"
	}
	return string(kind) + "s"
}
