package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/cmdk/pkg/models"
	"github.com/pluqqy/cmdk/pkg/navigation"
)

const (
	CmdkDir            = ".cmdk"
	SettingsFile       = "settings.yaml"
	NavigationFile     = "navigation.yaml"
	StateDir           = "state"
	navigationJSONFile = "navigation.jsonc"
)

// ErrNotInitialized is returned when the project directory is missing.
var ErrNotInitialized = errors.New("no .cmdk directory found. Run 'cmdk init' first")

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(CmdkDir, SettingsFile)
}

// StatePath returns the directory holding recents and task defaults.
func StatePath() string {
	return filepath.Join(CmdkDir, StateDir)
}

// NavigationPath returns the navigation file in use. A navigation.yaml
// wins over navigation.jsonc; when neither exists the YAML path is
// returned.
func NavigationPath() string {
	yamlPath := filepath.Join(CmdkDir, NavigationFile)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	jsonPath := filepath.Join(CmdkDir, navigationJSONFile)
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath
	}
	return yamlPath
}

// Initialized reports whether the .cmdk directory exists.
func Initialized() bool {
	info, err := os.Stat(CmdkDir)
	return err == nil && info.IsDir()
}

// InitProjectStructure creates the .cmdk directory with default settings
// and a starter navigation tree. Existing files are left alone.
func InitProjectStructure() error {
	dirs := []string{
		CmdkDir,
		StatePath(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(SettingsPath()); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	navPath := filepath.Join(CmdkDir, NavigationFile)
	if _, err := os.Stat(NavigationPath()); os.IsNotExist(err) {
		content, err := yaml.Marshal(navigation.Sample())
		if err != nil {
			return fmt.Errorf("failed to marshal navigation to YAML: %w", err)
		}
		if err := os.WriteFile(navPath, content, 0644); err != nil {
			return fmt.Errorf("failed to write navigation %s: %w", navPath, err)
		}
	}

	return nil
}

// ReadSettings reads settings.yaml. Fields missing from the file keep
// their default values.
func ReadSettings() (*models.Settings, error) {
	content, err := os.ReadFile(SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(CmdkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(SettingsPath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// ReadNavigation loads and parses the navigation file.
func ReadNavigation() ([]*navigation.Node, error) {
	return navigation.Load(NavigationPath())
}
