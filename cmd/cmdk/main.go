package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/cmdk/cmd/commands"
	"github.com/pluqqy/cmdk/internal/cli"
	"github.com/pluqqy/cmdk/pkg/files"
	"github.com/pluqqy/cmdk/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cmdk",
	Short: "Command palette for your workspace",
	Long: `cmdk is a keyboard-first command palette for a workspace app. It searches
navigation pages, tasks and workspaces, ranks them by match quality and how
recently you visited them, and remembers what you pick.

Run without arguments to open the interactive palette.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: commands.ApplyGlobalFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !files.Initialized() {
			fmt.Fprintf(os.Stderr, "Error: No .cmdk directory found in the current directory.\n")
			fmt.Fprintf(os.Stderr, "Please run 'cmdk init' first.\n")
			os.Exit(1)
		}
		return runPalette(cmd)
	},
}

func runPalette(cmd *cobra.Command) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	// The palette owns the terminal, so debug logs go to a file.
	logger, err := cli.NewLogger(true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	ctx.Logger = logger

	settings := ctx.LoadSettingsWithDefault()
	p, err := ctx.NewPalette(cli.PaletteOptions{})
	if err != nil {
		return err
	}

	model := tui.New(tui.Config{
		Palette:     p,
		Debounce:    settings.Search.Debounce,
		RecentLimit: settings.Recent.Limit,
		ShowPaths:   settings.UI.ShowPaths,
		ShowIcons:   settings.UI.ShowIcons,
		Context:     cmd.Context(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
		fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
		os.Exit(1)
	}

	if chosen := model.Chosen(); chosen != nil {
		fmt.Fprintln(cmd.OutOrStdout(), chosen.Href)
	}
	return nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new cmdk project",
	Long:  `Creates the .cmdk folder with default settings and a starter navigation tree`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		cli.PrintInfo("Initializing cmdk in %s...", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		cli.PrintSuccess("Created %s and %s", files.SettingsPath(), files.NavigationPath())
		cli.PrintInfo("Set api.workspace in %s to search tasks, then run 'cmdk'.", files.SettingsPath())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cmdk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cmdk version %s\n", version)
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewRecentCommand())
	rootCmd.AddCommand(commands.NewNavCommand())
	rootCmd.AddCommand(commands.NewVisitCommand())
	rootCmd.AddCommand(commands.NewTaskCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
