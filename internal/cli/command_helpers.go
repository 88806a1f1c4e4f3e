package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pluqqy/cmdk/pkg/api"
	"github.com/pluqqy/cmdk/pkg/files"
	"github.com/pluqqy/cmdk/pkg/models"
	"github.com/pluqqy/cmdk/pkg/navigation"
	"github.com/pluqqy/cmdk/pkg/palette"
	"github.com/pluqqy/cmdk/pkg/recent"
	"github.com/pluqqy/cmdk/pkg/storage"
)

// DebugLogFile receives debug logs while the interactive palette owns the
// terminal.
const DebugLogFile = "debug.log"

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	Logger      *zap.Logger

	// Backend overrides the API client, mainly for tests.
	Backend palette.Backend

	validated bool
	store     *recent.Store
}

// NewCommandContext creates a new command context
func NewCommandContext() (*CommandContext, error) {
	return &CommandContext{
		ProjectPath: files.CmdkDir,
		Logger:      zap.NewNop(),
	}, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return files.ErrNotInitialized
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		c.Logger.Debug("Using default settings", zap.Error(err))
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// Store opens the recents store backed by the project's state directory.
func (c *CommandContext) Store() *recent.Store {
	if c.store == nil {
		kv := storage.NewDir(files.StatePath())
		c.store = recent.NewStore(kv, recent.WithLogger(c.Logger.Named("recent")))
	}
	return c.store
}

// Client builds the workspace API client from settings. The bearer token
// is read from the environment variable named by api.token_env.
func (c *CommandContext) Client() (palette.Backend, error) {
	if c.Backend != nil {
		return c.Backend, nil
	}

	settings := c.LoadSettingsWithDefault()
	var token string
	if settings.API.TokenEnv != "" {
		token = os.Getenv(settings.API.TokenEnv)
	}

	client, err := api.New(api.Config{
		BaseURL:           settings.API.BaseURL,
		Token:             token,
		Timeout:           settings.API.RequestTimeout,
		CreateTaskTimeout: settings.API.CreateTaskTimeout,
		Logger:            c.Logger.Named("api"),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NavigationItems loads and flattens the project's navigation tree.
func (c *CommandContext) NavigationItems() ([]navigation.Item, error) {
	nodes, err := files.ReadNavigation()
	if err != nil {
		return nil, err
	}
	return navigation.Flatten(nodes), nil
}

// PaletteOptions tweaks the palette built by NewPalette.
type PaletteOptions struct {
	Limit    int
	MinScore int
	NoTasks  bool
}

// NewPalette wires navigation, recents and the API client into a palette.
// A misconfigured API disables the remote sections instead of failing.
func (c *CommandContext) NewPalette(opts PaletteOptions) (*palette.Palette, error) {
	settings := c.LoadSettingsWithDefault()

	nav, err := c.NavigationItems()
	if err != nil {
		return nil, err
	}

	mode, err := api.ParseSearchMode(settings.Search.TaskSearchMode)
	if err != nil {
		return nil, err
	}

	cfg := palette.Config{
		Navigation:     nav,
		Recent:         c.Store(),
		WorkspaceID:    settings.API.Workspace,
		Limit:          settings.Search.Limit,
		MinScore:       settings.Search.MinScore,
		TaskSearchMode: mode,
		IncludeTasks:   settings.Search.IncludeTasks && !opts.NoTasks,
		Logger:         c.Logger.Named("palette"),
	}
	if opts.Limit > 0 {
		cfg.Limit = opts.Limit
	}
	if opts.MinScore > 0 {
		cfg.MinScore = opts.MinScore
	}

	backend, err := c.Client()
	if err != nil {
		c.Logger.Debug("API disabled", zap.Error(err))
	} else {
		cfg.Backend = backend
	}

	return palette.New(cfg)
}

// NewLogger builds the process logger. Without --debug it discards
// everything. With it, logs go to stderr, or to .cmdk/debug.log when
// toFile is set.
func NewLogger(toFile bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if toFile {
		path := filepath.Join(files.CmdkDir, DebugLogFile)
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
