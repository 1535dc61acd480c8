package domain

import "fmt"

// NoUsername is the sentinel stored when an address book has no account.
const NoUsername = "none"

// DefaultPlugin is the only sync plugin currently shipped.
const DefaultPlugin = "Google"

// Group selection values with special meaning.
const (
	GroupAll  = "All"
	GroupNone = "false"
)

// Direction controls which side of a sync is allowed to change.
type Direction int

const (
	DirectionComplete Direction = iota
	DirectionReadOnly
	DirectionWriteOnly
)

var directionNames = map[Direction]string{
	DirectionComplete:  "Complete",
	DirectionReadOnly:  "ReadOnly",
	DirectionWriteOnly: "WriteOnly",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection parses the names produced by Direction.String.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return DirectionComplete, fmt.Errorf("unknown sync direction %q (use Complete, ReadOnly or WriteOnly)", s)
}

// Preferences is the sync configuration of one address book.
type Preferences struct {
	Username                 string
	Plugin                   string
	SyncGroups               bool
	MyContacts               bool
	MyContactsName           string
	Direction                Direction
	Disabled                 bool
	SkipContactsWithoutEmail bool
	UpdateGoogleInConflicts  bool
	LastSync                 int64
}

// DefaultPreferences returns the configuration of a freshly bound address book.
func DefaultPreferences() Preferences {
	return Preferences{
		Username:   NoUsername,
		Plugin:     DefaultPlugin,
		SyncGroups: true,
		Direction:  DirectionComplete,
	}
}

// HasUsername reports whether the preferences name a real account.
func (p Preferences) HasUsername() bool {
	return p.Username != "" && p.Username != NoUsername
}

// ReadOnly reports whether remote changes are only pulled.
func (p Preferences) ReadOnly() bool { return p.Direction == DirectionReadOnly }

// WriteOnly reports whether local changes are only pushed.
func (p Preferences) WriteOnly() bool { return p.Direction == DirectionWriteOnly }

// GroupValue returns the group selection encoded by the group fields.
// MyContacts takes priority over SyncGroups.
func (p Preferences) GroupValue() string {
	if p.MyContacts {
		if p.MyContactsName != "" {
			return p.MyContactsName
		}
		return GroupNone
	}
	if p.SyncGroups {
		return GroupAll
	}
	return GroupNone
}

// SetGroup updates the group fields from a selection value.
func (p *Preferences) SetGroup(value string) {
	p.SyncGroups = value == GroupAll
	p.MyContacts = value != GroupAll && value != GroupNone
	p.MyContactsName = value
}
