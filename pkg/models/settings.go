package models

import "time"

// Settings represents the application configuration
type Settings struct {
	API    APISettings    `yaml:"api"`
	Search SearchSettings `yaml:"search"`
	Recent RecentSettings `yaml:"recent"`
	UI     UISettings     `yaml:"ui"`
}

// APISettings points the palette at the workspace backend
type APISettings struct {
	BaseURL string `yaml:"base_url"`
	// TokenEnv names the environment variable holding the bearer token.
	TokenEnv          string        `yaml:"token_env"`
	Workspace         string        `yaml:"workspace"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	CreateTaskTimeout time.Duration `yaml:"create_task_timeout"`
}

// SearchSettings controls ranking and task search
type SearchSettings struct {
	Limit          int           `yaml:"limit"`
	MinScore       int           `yaml:"min_score"`
	Debounce       time.Duration `yaml:"debounce"`
	TaskSearchMode string        `yaml:"task_search_mode"` // "text" or "semantic"
	IncludeTasks   bool          `yaml:"include_tasks"`
}

// RecentSettings controls the recent items list
type RecentSettings struct {
	Limit int `yaml:"limit"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPaths bool `yaml:"show_paths"`
	ShowIcons bool `yaml:"show_icons"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			BaseURL:           "http://localhost:3000",
			TokenEnv:          "CMDK_API_TOKEN",
			RequestTimeout:    10 * time.Second,
			CreateTaskTimeout: 15 * time.Second,
		},
		Search: SearchSettings{
			Limit:          10,
			MinScore:       100,
			Debounce:       300 * time.Millisecond,
			TaskSearchMode: "text",
			IncludeTasks:   true,
		},
		Recent: RecentSettings{
			Limit: 5,
		},
		UI: UISettings{
			ShowPaths: true,
			ShowIcons: false,
		},
	}
}
