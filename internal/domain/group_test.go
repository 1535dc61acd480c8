package domain

import "testing"

func TestIsSystemGroup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"resource name", "contactGroups/myContacts", true},
		{"bare reserved id", "starred", true},
		{"chat buddies", "contactGroups/chatBuddies", true},
		{"legacy feed title", "System Group: My Contacts", true},
		{"user group resource", "contactGroups/5c9a1e2b0f3d", false},
		{"user title", "Work", false},
		{"reserved id is case sensitive", "Friends", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSystemGroup(tt.input); got != tt.want {
				t.Errorf("IsSystemGroup(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAccessTokenString(t *testing.T) {
	tok := AccessToken{Type: "Bearer", Value: "ya29.abc"}
	if got := tok.String(); got != "Bearer ya29.abc" {
		t.Errorf("String() = %q, want %q", got, "Bearer ya29.abc")
	}
	if got := (AccessToken{Value: "raw"}).String(); got != "raw" {
		t.Errorf("String() without type = %q, want %q", got, "raw")
	}
}
