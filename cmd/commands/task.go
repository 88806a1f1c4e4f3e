package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/internal/cli"
	"github.com/pluqqy/cmdk/pkg/api"
	"github.com/pluqqy/cmdk/pkg/palette"
)

// NewTaskCommand creates the task command
func NewTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work with workspace tasks",
	}
	cmd.AddCommand(newTaskCreateCommand())
	return cmd
}

func newTaskCreateCommand() *cobra.Command {
	var (
		name        string
		description string
		boardID     string
		listID      string
		workspaceID string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long: `Create a task in the configured workspace.

When --board and --list are omitted the board and list used last time in
this workspace are reused, as long as they still exist.

Examples:
  # First task: pick the board and list
  cmdk task create --name "Write release notes" --board b1 --list todo

  # Later tasks reuse them
  cmdk task create --name "Tag the release"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := projectContext()
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			settings := ctx.LoadSettingsWithDefault()
			if workspaceID != "" {
				settings.API.Workspace = workspaceID
			}

			p, err := ctx.NewPalette(cli.PaletteOptions{})
			if err != nil {
				return err
			}

			task, err := p.CreateTask(cmd.Context(), palette.CreateTaskInput{
				Name:        name,
				Description: description,
				BoardID:     boardID,
				ListID:      listID,
			})
			if err != nil {
				if errors.Is(err, palette.ErrNoBackend) {
					return err
				}
				return errors.New(api.UserMessage("create task", err))
			}

			format := outputFormat(cmd)
			if format != string(cli.FormatText) {
				return cli.OutputResults(cmd.OutOrStdout(), format, task)
			}
			cli.PrintSuccess("Created task %q", task.Name)
			cli.PrintInfo("%s", palette.TaskHref(p.WorkspaceID(), task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&boardID, "board", "", "Board ID (default: last used)")
	cmd.Flags().StringVar(&listID, "list", "", "List ID (default: last used)")
	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "Workspace ID (default from settings)")

	return cmd
}
