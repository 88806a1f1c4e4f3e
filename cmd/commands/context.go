package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/internal/cli"
)

// Global flag values shared by every command.
var (
	flagOutput  string
	flagQuiet   bool
	flagNoColor bool
	flagYes     bool
	flagDebug   bool
)

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: text, json, or yaml")
	root.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational messages")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to confirmation prompts")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs")
}

// ApplyGlobalFlags validates the persistent flags and hands them to the
// cli package. It is the root command's PersistentPreRunE.
func ApplyGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := cli.ValidateOutputFormat(flagOutput); err != nil {
		return err
	}
	cli.SetGlobalFlags(flagQuiet, flagNoColor, flagYes, flagDebug)
	cli.SetIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	return nil
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		return string(cli.FormatText)
	}
	return format
}

// newCommandContext builds the context each command runs with.
var newCommandContext = func() (*cli.CommandContext, error) {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewLogger(false)
	if err != nil {
		return nil, err
	}
	ctx.Logger = logger
	return ctx, nil
}

// projectContext returns a command context for an initialized project.
func projectContext() (*cli.CommandContext, error) {
	ctx, err := newCommandContext()
	if err != nil {
		return nil, err
	}
	if err := ctx.ValidateProject(); err != nil {
		return nil, err
	}
	return ctx, nil
}
