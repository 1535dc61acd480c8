package people

import (
	"errors"
	"testing"

	peopleapi "google.golang.org/api/people/v1"

	"github.com/lu-zhengda/contactsync/internal/provider"
)

func TestMapContactGroup(t *testing.T) {
	tests := []struct {
		name       string
		input      *peopleapi.ContactGroup
		wantTitle  string
		wantSystem bool
	}{
		{
			name:      "user group",
			input:     &peopleapi.ContactGroup{ResourceName: "contactGroups/3f1", GroupType: "USER_CONTACT_GROUP", Name: "Work", FormattedName: "Work"},
			wantTitle: "Work",
		},
		{
			name:       "system group by type",
			input:      &peopleapi.ContactGroup{ResourceName: "contactGroups/starred", GroupType: "SYSTEM_CONTACT_GROUP", Name: "starred", FormattedName: "Starred"},
			wantTitle:  "Starred",
			wantSystem: true,
		},
		{
			name:       "system group by reserved id",
			input:      &peopleapi.ContactGroup{ResourceName: "contactGroups/friends", Name: "friends"},
			wantTitle:  "friends",
			wantSystem: true,
		},
		{
			name:      "falls back to name",
			input:     &peopleapi.ContactGroup{ResourceName: "contactGroups/8aa", Name: "Book Club"},
			wantTitle: "Book Club",
		},
		{
			name:      "empty title kept for the catalog to filter",
			input:     &peopleapi.ContactGroup{ResourceName: "contactGroups/8ab"},
			wantTitle: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapContactGroup(tt.input)
			if err != nil {
				t.Fatalf("mapContactGroup() error: %v", err)
			}
			if got.ID != tt.input.ResourceName {
				t.Errorf("ID = %q, want %q", got.ID, tt.input.ResourceName)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.System != tt.wantSystem {
				t.Errorf("System = %v, want %v", got.System, tt.wantSystem)
			}
		})
	}
}

func TestMapContactGroup_Malformed(t *testing.T) {
	for _, g := range []*peopleapi.ContactGroup{nil, {Name: "no resource name"}} {
		if _, err := mapContactGroup(g); !errors.Is(err, provider.ErrMalformedResponse) {
			t.Errorf("mapContactGroup(%+v) error = %v, want ErrMalformedResponse", g, err)
		}
	}
}
