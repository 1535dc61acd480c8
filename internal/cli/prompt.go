package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
)

// cliPrompter asks confirmations on the terminal and prints alerts.
type cliPrompter struct {
	assumeYes bool
	out       io.Writer
}

// newPrompter returns a prompter for CLI commands. With assumeYes every
// confirmation is accepted without asking. Alerts go to stderr in JSON mode
// so stdout stays parseable.
func newPrompter(assumeYes bool) *cliPrompter {
	out := io.Writer(os.Stdout)
	if jsonFlag {
		out = os.Stderr
	}
	return &cliPrompter{assumeYes: assumeYes, out: out}
}

func (p *cliPrompter) Confirm(prompt string) bool {
	if p.assumeYes {
		return true
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		// Esc or no terminal counts as "no".
		return false
	}
	return ok
}

func (p *cliPrompter) Alert(message string) {
	fmt.Fprintln(p.out, message)
}
