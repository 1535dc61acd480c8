package domain

import "strings"

// Group is one remote contact group.
type Group struct {
	ID     string
	Title  string
	System bool
}

const resourcePrefix = "contactGroups/"

// systemGroupIDs are the reserved contact group identifiers Google creates for
// every account.
var systemGroupIDs = map[string]struct{}{
	"all":         {},
	"myContacts":  {},
	"starred":     {},
	"friends":     {},
	"family":      {},
	"coworkers":   {},
	"chatBuddies": {},
	"blocked":     {},
}

// IsSystemGroup reports whether name identifies a reserved group. It accepts a
// People API resource name ("contactGroups/myContacts"), a bare reserved ID, or
// a legacy feed title ("System Group: My Contacts").
func IsSystemGroup(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "System Group:") {
		return true
	}
	_, ok := systemGroupIDs[strings.TrimPrefix(name, resourcePrefix)]
	return ok
}
