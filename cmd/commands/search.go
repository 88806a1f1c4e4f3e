package commands

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/internal/cli"
	"github.com/pluqqy/cmdk/pkg/api"
	"github.com/pluqqy/cmdk/pkg/palette"
	"github.com/pluqqy/cmdk/pkg/search"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query   string             `json:"query" yaml:"query"`
	Count   int                `json:"count" yaml:"count"`
	Results []SearchItemOutput `json:"results" yaml:"results"`
	Errors  []string           `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Title   string   `json:"title" yaml:"title"`
	Href    string   `json:"href" yaml:"href"`
	Score   int      `json:"score" yaml:"score"`
	Matched string   `json:"matched" yaml:"matched"`
	Path    []string `json:"path,omitempty" yaml:"path,omitempty"`
	Board   string   `json:"board,omitempty" yaml:"board,omitempty"`
}

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var (
		limit    int
		minScore int
		noTasks  bool
		record   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search pages, tasks and workspaces",
		Long: `Rank navigation pages, tasks and workspaces against a query the way the
command palette does.

Exact titles score highest, then prefixes, word matches, substrings and
finally fuzzy subsequence matches. Recently visited pages get a boost.

Examples:
  # Find the billing page
  cmdk search bill

  # Only search navigation, show up to 20 results
  cmdk search --no-tasks --limit 20 set

  # Machine-readable output
  cmdk search -o json members`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateLimit("limit", limit); err != nil {
				return err
			}
			return cli.ValidateLimit("min-score", minScore)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext()
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			p, err := ctx.NewPalette(cli.PaletteOptions{Limit: limit, MinScore: minScore, NoTasks: noTasks})
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			res := p.Query(cmd.Context(), query)
			if record {
				p.RecordSearch(query)
			}

			return renderSearch(cmd, res)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results per section (default from settings)")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Minimum score to include (default from settings)")
	cmd.Flags().BoolVar(&noTasks, "no-tasks", false, "Skip the remote task search")
	cmd.Flags().BoolVar(&record, "record", false, "Remember the query in recent searches")

	return cmd
}

func renderSearch(cmd *cobra.Command, res palette.Results) error {
	out := SearchResultOutput{
		Query:   res.Query,
		Results: []SearchItemOutput{},
	}
	for _, r := range res.All() {
		out.Results = append(out.Results, SearchItemOutput{
			Kind:    string(r.Item.Kind),
			Title:   r.Item.Title,
			Href:    r.Item.Href,
			Score:   r.Score,
			Matched: r.MatchedText,
			Path:    r.Item.Path,
			Board:   r.Item.BoardName,
		})
	}
	out.Count = len(out.Results)

	sections := []struct {
		action string
		err    error
	}{
		{"search tasks", res.Tasks.Err},
		{"load workspaces", res.Workspaces.Err},
	}
	for _, s := range sections {
		if s.err != nil {
			out.Errors = append(out.Errors, api.UserMessage(s.action, s.err))
		}
	}

	format := outputFormat(cmd)
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, out)
	}

	for _, msg := range out.Errors {
		cli.PrintWarning("%s", msg)
	}
	if out.Count == 0 {
		cli.PrintInfo("No results for %q", res.Query)
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("KIND", "TITLE", "HREF", "SCORE")
	for _, r := range res.All() {
		table.Row(string(r.Item.Kind), displayTitle(r, res.Query), r.Item.Href, strconv.Itoa(r.Score))
	}
	table.Flush()
	return nil
}

// displayTitle shows the breadcrumb for navigation hits and the board for
// tasks, with the matched characters highlighted.
func displayTitle(r search.Result[palette.Candidate], query string) string {
	title := r.Item.Title
	if !cli.NoColor() {
		title = search.Highlight(title, query, func(s string) string { return matchStyle.Render(s) })
	}
	switch {
	case len(r.Item.Path) > 1:
		return strings.Join(r.Item.Path[:len(r.Item.Path)-1], " › ") + " › " + title
	case r.Item.BoardName != "":
		return title + " (" + r.Item.BoardName + ")"
	}
	return title
}
