package app

import (
	"sort"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// CatalogEntry is one selectable group option.
type CatalogEntry struct {
	Label   string
	Value   string
	Default bool
}

// DefaultEntries are the built-in options present before any remote group is
// known. They are never removed.
var DefaultEntries = []CatalogEntry{
	{Label: "All groups", Value: domain.GroupAll, Default: true},
	{Label: "No groups", Value: domain.GroupNone, Default: true},
	{Label: "My Contacts", Value: "Contacts", Default: true},
	{Label: "Friends", Value: "Friends", Default: true},
	{Label: "Family", Value: "Family", Default: true},
	{Label: "Coworkers", Value: "Coworkers", Default: true},
}

// FallbackIndex is selected when a reset leaves the selection invalid. It is
// the first default that is neither "All" nor "None".
const FallbackIndex = 2

// GroupCatalog is the selectable list of groups: the defaults followed by the
// remote groups of the current account.
type GroupCatalog struct {
	entries  []CatalogEntry
	selected int
}

// NewGroupCatalog returns a catalog holding only the defaults, with "All" selected.
func NewGroupCatalog() *GroupCatalog {
	return &GroupCatalog{entries: append([]CatalogEntry(nil), DefaultEntries...)}
}

// Reset drops every non-default entry. When the selected entry is dropped or
// the selection is out of range, FallbackIndex is selected.
func (c *GroupCatalog) Reset() {
	selectedRemoved := c.selected >= 0 && c.selected < len(c.entries) && !c.entries[c.selected].Default

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.Default {
			kept = append(kept, e)
		}
	}
	c.entries = kept

	if selectedRemoved || c.selected < 0 || c.selected >= len(c.entries) {
		c.selected = FallbackIndex
	}
}

// Merge appends the titles of groups, skipping system groups and empty titles.
// Titles are deduplicated and sorted by byte order.
func (c *GroupCatalog) Merge(groups []domain.Group) {
	seen := make(map[string]bool, len(groups))
	var titles []string
	for _, g := range groups {
		if g.System || g.Title == "" || seen[g.Title] {
			continue
		}
		seen[g.Title] = true
		titles = append(titles, g.Title)
	}
	sort.Strings(titles)
	for _, t := range titles {
		c.entries = append(c.entries, CatalogEntry{Label: t, Value: t})
	}
}

// Select selects the entry with the given value. If there is none and create
// is set, a new entry is appended and selected. It reports whether an entry
// ended up selected.
func (c *GroupCatalog) Select(value string, create bool) bool {
	for i, e := range c.entries {
		if e.Value == value {
			c.selected = i
			return true
		}
	}
	if !create {
		return false
	}
	c.entries = append(c.entries, CatalogEntry{Label: value, Value: value})
	c.selected = len(c.entries) - 1
	return true
}

// SelectIndex selects the entry at i. It reports false if i is out of range.
func (c *GroupCatalog) SelectIndex(i int) bool {
	if i < 0 || i >= len(c.entries) {
		return false
	}
	c.selected = i
	return true
}

// Selected returns the selected entry.
func (c *GroupCatalog) Selected() CatalogEntry {
	if c.selected < 0 || c.selected >= len(c.entries) {
		return c.entries[FallbackIndex]
	}
	return c.entries[c.selected]
}

// SelectedIndex returns the index of the selected entry.
func (c *GroupCatalog) SelectedIndex() int { return c.selected }

// Entries returns a copy of all entries in display order.
func (c *GroupCatalog) Entries() []CatalogEntry {
	return append([]CatalogEntry(nil), c.entries...)
}

// RemoteTitles returns the values of the non-default entries.
func (c *GroupCatalog) RemoteTitles() []string {
	var titles []string
	for _, e := range c.entries {
		if !e.Default {
			titles = append(titles, e.Value)
		}
	}
	return titles
}
