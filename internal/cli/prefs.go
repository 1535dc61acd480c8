package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/domain"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the sync preferences of an address book",
	}
	cmd.AddCommand(newPrefsShowCmd())
	cmd.AddCommand(newPrefsSetCmd())
	return cmd
}

func newPrefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [addressbook]",
		Short: "Show the preferences of an address book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			ab, err := findAddressBook(ctx, db, args[0])
			if err != nil {
				return err
			}
			p, err := db.LoadPreferences(ctx, ab.ID)
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(toJSONPreferences(*p))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Account\t%s\n", p.Username)
			fmt.Fprintf(w, "Plugin\t%s\n", p.Plugin)
			fmt.Fprintf(w, "Group\t%s\n", p.GroupValue())
			fmt.Fprintf(w, "Direction\t%s\n", p.Direction)
			fmt.Fprintf(w, "Disabled\t%t\n", p.Disabled)
			fmt.Fprintf(w, "Skip contacts without email\t%t\n", p.SkipContactsWithoutEmail)
			fmt.Fprintf(w, "Update Google in conflicts\t%t\n", p.UpdateGoogleInConflicts)
			fmt.Fprintf(w, "Last sync\t%s\n", formatLastSync(p.LastSync))
			return w.Flush()
		},
	}
}

type prefsFlags struct {
	username         string
	group            string
	direction        string
	plugin           string
	disabled         bool
	skipNoEmail      bool
	updateGoogle     bool
	yes              bool
	explainDirection bool
}

func newPrefsSetCmd() *cobra.Command {
	var f prefsFlags

	cmd := &cobra.Command{
		Use:   "set [addressbook]",
		Short: "Change the preferences of an address book",
		Long: "Change the preferences of an address book. When the change affects an\n" +
			"address book that was synced before, you are asked whether to reset it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			prompter := newPrompter(f.yes)
			ctrl, err := newController(db, localClient(), prompter, newLogger(cfg, os.Stderr))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			if f.explainDirection {
				ctrl.ExplainDirection()
			}
			idx := ctrl.IndexOf(args[0])
			if idx < 0 {
				return fmt.Errorf("address book not found: %s", args[0])
			}
			// The group list is not needed here, so the fetch is never run.
			if _, err := ctrl.SelectAccount(ctx, idx); err != nil {
				return err
			}

			if err := applyPrefsFlags(cmd, ctrl, f); err != nil {
				return err
			}
			if !ctrl.Unsaved() {
				return fmt.Errorf("nothing to change; pass at least one preference flag")
			}

			if _, err := ctrl.SaveSelectedAccount(ctx); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "prefs-set", AddressBookID: ctrl.SelectedAddressBook().ID})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.username, "username", "", `account to bind ("none" to unbind)`)
	cmd.Flags().StringVar(&f.group, "group", "", `group to sync ("All", "false" for none, or a group name)`)
	cmd.Flags().StringVar(&f.direction, "direction", "", "sync direction (Complete, ReadOnly, WriteOnly)")
	cmd.Flags().StringVar(&f.plugin, "plugin", "", "sync plugin")
	cmd.Flags().BoolVar(&f.disabled, "disabled", false, "temporarily disable sync")
	cmd.Flags().BoolVar(&f.skipNoEmail, "skip-no-email", false, "skip contacts without an email address")
	cmd.Flags().BoolVar(&f.updateGoogle, "update-google", false, "local changes win conflicts")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "accept the reset confirmation without asking")
	cmd.Flags().BoolVar(&f.explainDirection, "explain-direction", false, "print what the sync directions mean")
	return cmd
}

// applyPrefsFlags copies every flag the user set onto the controller form.
func applyPrefsFlags(cmd *cobra.Command, ctrl *app.Controller, f prefsFlags) error {
	flags := cmd.Flags()
	if flags.Changed("username") {
		// A new account resets the group menu; keep the saved group unless
		// --group picks another one.
		group := ctrl.Form().GroupValue()
		ctrl.SetUsername(cmd.Context(), f.username)
		if !flags.Changed("group") {
			ctrl.SetGroup(group)
		}
	}
	if flags.Changed("group") {
		ctrl.SetGroup(f.group)
	}
	if flags.Changed("direction") {
		d, err := domain.ParseDirection(f.direction)
		if err != nil {
			return err
		}
		ctrl.SetDirection(d)
	}
	if flags.Changed("plugin") {
		ctrl.SetPlugin(f.plugin)
	}
	if flags.Changed("disabled") {
		ctrl.SetDisabled(f.disabled)
	}
	if flags.Changed("skip-no-email") {
		ctrl.SetSkipContactsWithoutEmail(f.skipNoEmail)
	}
	if flags.Changed("update-google") {
		ctrl.SetUpdateGoogleInConflicts(f.updateGoogle)
	}
	return nil
}
