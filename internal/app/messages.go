package app

// User-facing prompt and alert texts.
const (
	PromptConfirmReset = "The synchronization settings of this address book changed since its last sync.\n" +
		"It has to be reset: every contact is removed locally and downloaded again on the next sync.\n" +
		"Reset the address book?"
	PromptSavedRestart   = "Your settings were saved. Restart contactsync before the next sync."
	PromptSavedNoRestart = "Your settings were saved."
	PromptPleaseRestart  = "Please restart contactsync"
	PromptUnsavedChanges = "You have unsaved changes. Save them now?"
	PromptDirection      = "Complete: changes are synchronized both ways.\n" +
		"ReadOnly: remote changes are downloaded, local changes are never uploaded.\n" +
		"WriteOnly: local changes are uploaded, remote changes are never downloaded."
)
