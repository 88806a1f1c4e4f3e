// Package navigation models the app's menu tree and flattens it into a
// searchable list with breadcrumbs.
package navigation

// Node is one entry of the navigation tree. A node with an Href is a
// leaf that can be navigated to; a node without one is a group header
// whose title becomes part of its descendants' breadcrumbs. A nil *Node
// in a Children slice is a separator.
type Node struct {
	Title        string   `yaml:"title" json:"title"`
	Href         string   `yaml:"href,omitempty" json:"href,omitempty"`
	Icon         string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Category     string   `yaml:"category,omitempty" json:"category,omitempty"`
	Aliases      []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Experimental bool     `yaml:"experimental,omitempty" json:"experimental,omitempty"`
	Disabled     bool     `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	// TempDisabled hides an entry that is switched off for now, e.g.
	// behind a feature flag.
	TempDisabled bool    `yaml:"temp_disabled,omitempty" json:"tempDisabled,omitempty"`
	Children     []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsLeaf reports whether the node can be navigated to.
func (n *Node) IsLeaf() bool {
	return n.Href != ""
}

// IsGroup reports whether the node only groups its children.
func (n *Node) IsGroup() bool {
	return n.Href == "" && len(n.Children) > 0
}

// Hidden reports whether the node itself is left out of the flat list.
func (n *Node) Hidden() bool {
	return n.Disabled || n.TempDisabled
}

// Item is a flattened leaf, ready for searching.
type Item struct {
	Title        string   `json:"title" yaml:"title"`
	Href         string   `json:"href" yaml:"href"`
	Icon         string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Aliases      []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Experimental bool     `json:"experimental,omitempty" yaml:"experimental,omitempty"`
	Path         []string `json:"path" yaml:"path"`
}

func (i Item) SearchTitle() string     { return i.Title }
func (i Item) SearchAliases() []string { return i.Aliases }
