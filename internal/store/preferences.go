package store

import (
	"strconv"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// Preference keys as persisted for each address book.
const (
	PrefUsername                 = "Username"
	PrefPlugin                   = "Plugin"
	PrefSyncGroups               = "syncGroups"
	PrefMyContacts               = "myContacts"
	PrefMyContactsName           = "myContactsName"
	PrefReadOnly                 = "readOnly"
	PrefWriteOnly                = "writeOnly"
	PrefDisabled                 = "Disabled"
	PrefSkipContactsWithoutEmail = "skipContactsWithoutEmail"
	PrefUpdateGoogleInConflicts  = "updateGoogleInConflicts"
	PrefLastSync                 = "lastSync"
	PrefPrimary                  = "Primary"
)

// EncodePreferences flattens prefs into the string key/value bag that is
// persisted. Every key is always present.
func EncodePreferences(p *domain.Preferences) map[string]string {
	return map[string]string{
		PrefUsername:                 p.Username,
		PrefPlugin:                   p.Plugin,
		PrefSyncGroups:               strconv.FormatBool(p.SyncGroups),
		PrefMyContacts:               strconv.FormatBool(p.MyContacts),
		PrefMyContactsName:           p.MyContactsName,
		PrefReadOnly:                 strconv.FormatBool(p.ReadOnly()),
		PrefWriteOnly:                strconv.FormatBool(p.WriteOnly()),
		PrefDisabled:                 strconv.FormatBool(p.Disabled),
		PrefSkipContactsWithoutEmail: strconv.FormatBool(p.SkipContactsWithoutEmail),
		PrefUpdateGoogleInConflicts:  strconv.FormatBool(p.UpdateGoogleInConflicts),
		PrefLastSync:                 strconv.FormatInt(p.LastSync, 10),
		PrefPrimary:                  "true",
	}
}

// DecodePreferences rebuilds preferences from a stored bag. Missing keys keep
// their defaults; values that do not parse read as false or 0, except
// syncGroups, which only an explicit "false" turns off.
func DecodePreferences(bag map[string]string) domain.Preferences {
	p := domain.DefaultPreferences()
	if v, ok := bag[PrefUsername]; ok && v != "" {
		p.Username = v
	}
	if v, ok := bag[PrefPlugin]; ok && v != "" {
		p.Plugin = v
	}
	if v, ok := bag[PrefSyncGroups]; ok {
		p.SyncGroups = v != "false"
	}
	p.MyContacts = bag[PrefMyContacts] == "true"
	p.MyContactsName = bag[PrefMyContactsName]

	// readOnly wins if a bag ever carries both flags.
	switch {
	case bag[PrefReadOnly] == "true":
		p.Direction = domain.DirectionReadOnly
	case bag[PrefWriteOnly] == "true":
		p.Direction = domain.DirectionWriteOnly
	default:
		p.Direction = domain.DirectionComplete
	}

	p.Disabled = bag[PrefDisabled] == "true"
	p.SkipContactsWithoutEmail = bag[PrefSkipContactsWithoutEmail] == "true"
	p.UpdateGoogleInConflicts = bag[PrefUpdateGoogleInConflicts] == "true"
	if v, err := strconv.ParseInt(bag[PrefLastSync], 10, 64); err == nil && v > 0 {
		p.LastSync = v
	}
	return p
}
