package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store/sqlite"
)

func newAddressBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "addressbook",
		Aliases: []string{"ab"},
		Short:   "Manage local address books",
	}
	cmd.AddCommand(newAddressBookAddCmd())
	cmd.AddCommand(newAddressBookListCmd())
	cmd.AddCommand(newAddressBookRemoveCmd())
	cmd.AddCommand(newAddressBookMarkSyncedCmd())
	return cmd
}

func newAddressBookAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Create an address book (no-op if it exists)",
		Args:  cobra.ExactArgs(1),
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

			ctrl, err := newController(db, localClient(), newPrompter(false), newLogger(cfg, os.Stderr))
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			ab, err := ctrl.NewAddressBook(ctx, args[0])
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "add", AddressBookID: ab.ID})
			}
			fmt.Printf("Address book ready: %s (%s)\n", ab.Name, ab.ID)
			return nil
		},
	}
}

func newAddressBookListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List address books and their accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			books, err := db.ListAddressBooks(ctx)
			if err != nil {
				return fmt.Errorf("failed to list address books: %w", err)
			}
			prefs := make([]domain.Preferences, 0, len(books))
			for _, ab := range books {
				p, err := db.LoadPreferences(ctx, ab.ID)
				if err != nil {
					return err
				}
				prefs = append(prefs, *p)
			}

			if jsonFlag {
				return printJSON(toJSONAddressBooks(books, prefs))
			}

			if len(books) == 0 {
				fmt.Println("No address books. Run 'contactsync addressbook add <name>' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tACCOUNT\tGROUP\tDIRECTION\tLAST SYNC")
			for i, ab := range books {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					ab.Name,
					prefs[i].Username,
					prefs[i].GroupValue(),
					prefs[i].Direction,
					formatLastSync(prefs[i].LastSync),
				)
			}
			return w.Flush()
		},
	}
}

func newAddressBookRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove an address book and its preferences",
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
			if err := db.DeleteAddressBook(ctx, ab.ID); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "remove", AddressBookID: ab.ID})
			}
			fmt.Printf("Address book removed: %s\n", ab.Name)
			return nil
		},
	}
}

func newAddressBookMarkSyncedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-synced [name]",
		Short: "Record that the address book was just synchronized",
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
			now := time.Now().UnixMilli()
			if err := db.SetLastSync(ctx, ab.ID, now); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "mark-synced", AddressBookID: ab.ID})
			}
			fmt.Printf("Address book %s marked as synced at %s\n", ab.Name, formatLastSync(now))
			return nil
		},
	}
}

func findAddressBook(ctx context.Context, db *sqlite.DB, name string) (*domain.AddressBook, error) {
	ab, err := db.GetAddressBookByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find address book %q: %w", name, err)
	}
	return ab, nil
}

// formatLastSync renders a lastSync value, which is in milliseconds.
func formatLastSync(ms int64) string {
	if ms <= 0 {
		return "never"
	}
	return time.UnixMilli(ms).Format(time.DateTime)
}
