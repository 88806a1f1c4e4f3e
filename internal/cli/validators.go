package cli

import (
	"fmt"
	"strings"
)

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat(format string) error {
	switch OutputFormat(strings.ToLower(format)) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateLimit rejects negative limits; zero means the default.
func ValidateLimit(flag string, n int) error {
	if n < 0 {
		return fmt.Errorf("--%s must not be negative, got %d", flag, n)
	}
	return nil
}

// ValidateHref checks that href is an in-app path.
func ValidateHref(href string) error {
	if !strings.HasPrefix(href, "/") {
		return fmt.Errorf("invalid href: %s (must start with /)", href)
	}
	return nil
}
