package nav

import "strings"

// Item is a top-level navigation entry.
type Item struct {
	Path  string
	Label string
}

// RenderedItem is the template view of an Item.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Main is the header navigation, in display order.
var Main = []Item{
	{Path: "/", Label: "Home"},
	{Path: "/products", Label: "Products"},
	{Path: "/custom-build", Label: "Custom Build"},
	{Path: "/#contact", Label: "Contact"},
}

// Build marks the item matching currentPath as active.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	// in-page anchors are never the current page
	if strings.Contains(itemPath, "#") {
		return false
	}
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}
