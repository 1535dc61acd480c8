package domain

import "testing"

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	if p.Username != NoUsername {
		t.Errorf("Username = %q, want %q", p.Username, NoUsername)
	}
	if p.HasUsername() {
		t.Error("expected HasUsername() = false for defaults")
	}
	if p.ReadOnly() || p.WriteOnly() {
		t.Error("expected both direction flags false for defaults")
	}
	if p.LastSync != 0 {
		t.Errorf("LastSync = %d, want 0", p.LastSync)
	}
}

func TestGroupValue(t *testing.T) {
	tests := []struct {
		name string
		p    Preferences
		want string
	}{
		{"sync all groups", Preferences{SyncGroups: true}, GroupAll},
		{"no groups", Preferences{}, GroupNone},
		{"one group", Preferences{MyContacts: true, MyContactsName: "Work"}, "Work"},
		{"one group without name", Preferences{MyContacts: true}, GroupNone},
		{"my contacts wins over sync groups", Preferences{SyncGroups: true, MyContacts: true, MyContactsName: "Family"}, "Family"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.GroupValue(); got != tt.want {
				t.Errorf("GroupValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetGroup(t *testing.T) {
	tests := []struct {
		value          string
		wantSyncGroups bool
		wantMyContacts bool
	}{
		{GroupAll, true, false},
		{GroupNone, false, false},
		{"Work", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var p Preferences
			p.SetGroup(tt.value)
			if p.SyncGroups != tt.wantSyncGroups {
				t.Errorf("SyncGroups = %v, want %v", p.SyncGroups, tt.wantSyncGroups)
			}
			if p.MyContacts != tt.wantMyContacts {
				t.Errorf("MyContacts = %v, want %v", p.MyContacts, tt.wantMyContacts)
			}
			if p.MyContactsName != tt.value {
				t.Errorf("MyContactsName = %q, want %q", p.MyContactsName, tt.value)
			}
			if got := p.GroupValue(); got != tt.value {
				t.Errorf("GroupValue() after SetGroup(%q) = %q", tt.value, got)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirectionComplete, DirectionReadOnly, DirectionWriteOnly} {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) error: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), got, d)
		}
	}
	if _, err := ParseDirection("Sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
