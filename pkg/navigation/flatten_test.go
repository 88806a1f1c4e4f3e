package navigation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*Node
		want  []Item
	}{
		{
			name:  "empty",
			nodes: nil,
			want:  nil,
		},
		{
			name: "leaves at root",
			nodes: []*Node{
				{Title: "Dashboard", Href: "/dashboard", Icon: "home"},
				{Title: "Billing", Href: "/billing", Aliases: []string{"Plan"}},
			},
			want: []Item{
				{Title: "Dashboard", Href: "/dashboard", Icon: "home", Path: []string{"Dashboard"}},
				{Title: "Billing", Href: "/billing", Aliases: []string{"Plan"}, Path: []string{"Billing"}},
			},
		},
		{
			name: "separators are skipped",
			nodes: []*Node{
				nil,
				{Title: "Billing", Href: "/billing"},
				nil,
			},
			want: []Item{
				{Title: "Billing", Href: "/billing", Path: []string{"Billing"}},
			},
		},
		{
			name: "one disabled and one enabled leaf",
			nodes: []*Node{
				{Title: "Old Reports", Href: "/reports", Disabled: true},
				{Title: "Members", Href: "/members"},
			},
			want: []Item{
				{Title: "Members", Href: "/members", Path: []string{"Members"}},
			},
		},
		{
			name: "temporarily disabled leaf",
			nodes: []*Node{
				{Title: "Invoices", Href: "/invoices", TempDisabled: true},
			},
			want: nil,
		},
		{
			name: "groups nest their children",
			nodes: []*Node{
				{Title: "Settings", Children: []*Node{
					{Title: "Workspace", Children: []*Node{
						{Title: "Members", Href: "/settings/members"},
					}},
					{Title: "Billing", Href: "/settings/billing"},
				}},
			},
			want: []Item{
				{Title: "Members", Href: "/settings/members", Path: []string{"Settings", "Workspace", "Members"}},
				{Title: "Billing", Href: "/settings/billing", Path: []string{"Settings", "Billing"}},
			},
		},
		{
			name: "leaf children share the leaf's parent path",
			nodes: []*Node{
				{Title: "Finance", Children: []*Node{
					{Title: "Wallets", Href: "/wallets", Children: []*Node{
						{Title: "Transactions", Href: "/wallets/transactions"},
					}},
				}},
			},
			want: []Item{
				{Title: "Wallets", Href: "/wallets", Path: []string{"Finance", "Wallets"}},
				{Title: "Transactions", Href: "/wallets/transactions", Path: []string{"Finance", "Transactions"}},
			},
		},
		{
			name: "hidden group still yields its children",
			nodes: []*Node{
				{Title: "Labs", Disabled: true, Children: []*Node{
					{Title: "Warehouses", Href: "/warehouses", Experimental: true},
				}},
			},
			want: []Item{
				{Title: "Warehouses", Href: "/warehouses", Experimental: true, Path: []string{"Warehouses"}},
			},
		},
		{
			name: "empty group emits nothing",
			nodes: []*Node{
				{Title: "Coming soon"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.nodes)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlatten_ParentPath(t *testing.T) {
	nodes := []*Node{
		{Title: "Reports", Children: []*Node{{Title: "Sales", Href: "/reports/sales"}}},
	}

	got := Flatten(nodes, "Workspace")
	want := []Item{{Title: "Sales", Href: "/reports/sales", Path: []string{"Workspace", "Reports", "Sales"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_PathsDoNotAlias(t *testing.T) {
	parent := make([]string, 1, 8)
	parent[0] = "Root"
	nodes := []*Node{
		{Title: "A", Href: "/a"},
		{Title: "B", Href: "/b"},
	}

	got := Flatten(nodes, parent...)
	if got[0].Path[1] != "A" || got[1].Path[1] != "B" {
		t.Errorf("paths share storage: %v, %v", got[0].Path, got[1].Path)
	}
}

func TestBreadcrumb(t *testing.T) {
	item := Item{Path: []string{"Settings", "Members"}}
	if got := Breadcrumb(item, " > "); got != "Settings > Members" {
		t.Errorf("Breadcrumb() = %q", got)
	}
}

func TestParse(t *testing.T) {
	yamlDoc := `
- title: Dashboard
  href: /dashboard
- ~
- title: Settings
  children:
    - title: Members
      href: /settings/members
      aliases: [Team]
    - title: Legacy
      href: /legacy
      disabled: true
`
	jsonDoc := `[
  // top level
  {"title": "Dashboard", "href": "/dashboard"},
  null,
  {"title": "Settings", "children": [
    {"title": "Members", "href": "/settings/members", "aliases": ["Team"]},
    {"title": "Legacy", "href": "/legacy", "disabled": true},
  ]},
]`

	want := []Item{
		{Title: "Dashboard", Href: "/dashboard", Path: []string{"Dashboard"}},
		{Title: "Members", Href: "/settings/members", Aliases: []string{"Team"}, Path: []string{"Settings", "Members"}},
	}

	for name, tc := range map[string]struct {
		data   string
		format Format
	}{
		"yaml":  {yamlDoc, FormatYAML},
		"jsonc": {jsonDoc, FormatJSON},
	} {
		t.Run(name, func(t *testing.T) {
			nodes, err := Parse([]byte(tc.data), tc.format)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(nodes) != 3 || nodes[1] != nil {
				t.Fatalf("expected separator to be kept as nil, got %v", nodes)
			}
			if diff := cmp.Diff(want, Flatten(nodes)); diff != "" {
				t.Errorf("Flatten(Parse()) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_RequiresTitles(t *testing.T) {
	_, err := Parse([]byte("- href: /x\n"), FormatYAML)
	if err == nil {
		t.Error("expected error for untitled entry")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "navigation.yml")
	if err := os.WriteFile(path, []byte("- title: Billing\n  href: /billing\n"), 0644); err != nil {
		t.Fatal(err)
	}

	nodes, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if items := Flatten(nodes); len(items) != 1 || items[0].Href != "/billing" {
		t.Errorf("unexpected items: %v", items)
	}

	if _, err := Load(filepath.Join(dir, "nav.toml")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSample(t *testing.T) {
	items := Flatten(Sample())
	for _, it := range items {
		if it.Href == "/finance/invoices" {
			t.Error("temporarily disabled entry should not be emitted")
		}
		if len(it.Path) == 0 || it.Path[len(it.Path)-1] != it.Title {
			t.Errorf("path %v should end with title %q", it.Path, it.Title)
		}
	}
	if len(items) != 11 {
		t.Errorf("expected 11 sample items, got %d", len(items))
	}
}
