package navigation

import (
	"slices"
	"strings"
)

// Flatten walks the tree depth-first and returns every visible leaf, each
// annotated with its breadcrumb path (the titles of its enclosing groups
// followed by its own title). parentPath prefixes every path.
//
// Breadcrumb rule: a group header (no href) adds its title to the path of
// its descendants. A leaf's own children, and the children of a hidden
// node, are walked with the path the node itself was reached by, so they
// never nest under it.
func Flatten(nodes []*Node, parentPath ...string) []Item {
	var items []Item
	for _, n := range nodes {
		if n == nil {
			continue
		}

		switch {
		case n.Hidden():
			items = append(items, Flatten(n.Children, parentPath...)...)
		case n.IsLeaf():
			items = append(items, Item{
				Title:        n.Title,
				Href:         n.Href,
				Icon:         n.Icon,
				Category:     n.Category,
				Aliases:      n.Aliases,
				Experimental: n.Experimental,
				Path:         append(slices.Clone(parentPath), n.Title),
			})
			items = append(items, Flatten(n.Children, parentPath...)...)
		default:
			items = append(items, Flatten(n.Children, append(slices.Clone(parentPath), n.Title)...)...)
		}
	}
	return items
}

// Breadcrumb joins an item's path for display.
func Breadcrumb(item Item, sep string) string {
	return strings.Join(item.Path, sep)
}
