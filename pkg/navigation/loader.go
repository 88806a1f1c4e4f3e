package navigation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a navigation file.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON        // JSON with comments and trailing commas allowed
)

// FormatFor picks a format from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported navigation file type: %s", path)
	}
}

// Load reads a navigation tree from a YAML or JSON(C) file.
func Load(path string) ([]*Node, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read navigation %s: %w", path, err)
	}

	nodes, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse navigation %s: %w", path, err)
	}
	return nodes, nil
}

// Parse decodes a navigation tree. The document is a list of nodes;
// null entries are kept as separators.
func Parse(data []byte, format Format) ([]*Node, error) {
	var nodes []*Node

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, err
		}
	case FormatJSON:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONC: %w", err)
		}
		if err := json.Unmarshal(standardized, &nodes); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown navigation format %d", format)
	}

	if err := validate(nodes, nil); err != nil {
		return nil, err
	}
	return nodes, nil
}

func validate(nodes []*Node, path []string) error {
	for i, n := range nodes {
		if n == nil {
			continue
		}
		if strings.TrimSpace(n.Title) == "" {
			return fmt.Errorf("navigation entry %d under %q has no title", i, strings.Join(path, " > "))
		}
		if err := validate(n.Children, append(slices.Clone(path), n.Title)); err != nil {
			return err
		}
	}
	return nil
}

// Sample is the starter tree written by `cmdk init`.
func Sample() []*Node {
	return []*Node{
		{Title: "Dashboard", Href: "/dashboard", Icon: "home", Aliases: []string{"Home", "Overview"}},
		{Title: "Tasks", Category: "Work", Children: []*Node{
			{Title: "Boards", Href: "/tasks/boards", Aliases: []string{"Kanban"}},
			{Title: "My Tasks", Href: "/tasks/mine"},
			{Title: "Time Tracker", Href: "/time-tracker", Aliases: []string{"Timesheet", "Sessions"}},
		}},
		nil,
		{Title: "Inventory", Category: "Operations", Children: []*Node{
			{Title: "Products", Href: "/inventory/products"},
			{Title: "Warehouses", Href: "/inventory/warehouses", Experimental: true},
		}},
		{Title: "Finance", Category: "Operations", Children: []*Node{
			{Title: "Wallets", Href: "/finance/wallets"},
			{Title: "Transactions", Href: "/finance/transactions", Aliases: []string{"Payments"}},
			{Title: "Invoices", Href: "/finance/invoices", TempDisabled: true},
		}},
		{Title: "Settings", Category: "Workspace", Children: []*Node{
			{Title: "Members", Href: "/settings/members", Aliases: []string{"Team", "Users"}},
			{Title: "Billing", Href: "/settings/billing", Aliases: []string{"Plan", "Subscription"}},
			{Title: "Roles", Href: "/settings/roles", Aliases: []string{"Permissions"}},
		}},
	}
}
