package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

func defaultValues() []string {
	var values []string
	for _, e := range DefaultEntries {
		values = append(values, e.Value)
	}
	return values
}

func values(entries []CatalogEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out
}

func TestGroupCatalog_Defaults(t *testing.T) {
	c := NewGroupCatalog()
	assert.Equal(t, defaultValues(), values(c.Entries()))
	assert.Equal(t, domain.GroupAll, c.Selected().Value)
	assert.Empty(t, c.RemoteTitles())
	assert.Equal(t, "Contacts", DefaultEntries[FallbackIndex].Value)
}

func TestGroupCatalog_Merge(t *testing.T) {
	c := NewGroupCatalog()
	c.Merge([]domain.Group{
		{Title: "Work"},
		{Title: "System Contacts", System: true},
		{Title: "Family"},
	})

	want := append(defaultValues(), "Family", "Work")
	assert.Equal(t, want, values(c.Entries()))
	assert.Equal(t, []string{"Family", "Work"}, c.RemoteTitles())
}

func TestGroupCatalog_MergeFiltersAndSorts(t *testing.T) {
	tests := []struct {
		name   string
		groups []domain.Group
		want   []string
	}{
		{name: "empty input", groups: nil, want: nil},
		{
			name:   "duplicates collapse",
			groups: []domain.Group{{Title: "b"}, {Title: "a"}, {Title: "b"}},
			want:   []string{"a", "b"},
		},
		{
			name:   "empty titles dropped",
			groups: []domain.Group{{Title: ""}, {Title: "x"}},
			want:   []string{"x"},
		},
		{
			name:   "byte order puts upper case first",
			groups: []domain.Group{{Title: "beta"}, {Title: "Zeta"}, {Title: "alpha"}, {Title: "Émile"}},
			want:   []string{"Zeta", "alpha", "beta", "Émile"},
		},
		{
			name:   "only system groups",
			groups: []domain.Group{{Title: "Starred", System: true}, {Title: "My Contacts", System: true}},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewGroupCatalog()
			c.Merge(tt.groups)
			assert.Equal(t, tt.want, c.RemoteTitles())
			assert.Equal(t, defaultValues(), values(c.Entries())[:len(DefaultEntries)])
		})
	}
}

func TestGroupCatalog_Reset(t *testing.T) {
	c := NewGroupCatalog()
	c.Merge([]domain.Group{{Title: "Work"}, {Title: "Book Club"}})
	require.True(t, c.Select("Work", false))

	c.Reset()
	assert.Equal(t, defaultValues(), values(c.Entries()))
	assert.Equal(t, FallbackIndex, c.SelectedIndex())

	// idempotent
	once := c.Entries()
	onceSel := c.SelectedIndex()
	c.Reset()
	assert.Equal(t, once, c.Entries())
	assert.Equal(t, onceSel, c.SelectedIndex())
}

func TestGroupCatalog_ResetKeepsDefaultSelection(t *testing.T) {
	c := NewGroupCatalog()
	c.Merge([]domain.Group{{Title: "Work"}})
	require.True(t, c.Select(domain.GroupNone, false))

	c.Reset()
	assert.Equal(t, domain.GroupNone, c.Selected().Value)
}

func TestGroupCatalog_Select(t *testing.T) {
	c := NewGroupCatalog()

	assert.False(t, c.Select("Missing", false))
	assert.Equal(t, domain.GroupAll, c.Selected().Value)

	assert.True(t, c.Select("Missing", true))
	assert.Equal(t, "Missing", c.Selected().Value)
	assert.Equal(t, []string{"Missing"}, c.RemoteTitles())

	assert.True(t, c.SelectIndex(1))
	assert.Equal(t, domain.GroupNone, c.Selected().Value)
	assert.False(t, c.SelectIndex(99))
	assert.False(t, c.SelectIndex(-1))
}
