package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store"
	"github.com/lu-zhengda/contactsync/internal/store/sqlite"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage Google accounts",
	}
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountRemoveCmd())
	return cmd
}

func newAccountAddCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a Google account via OAuth",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, os.Stderr)

			client, err := newPeopleClient(cfg, log)
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			fmt.Println("Starting Google OAuth flow...")
			token, err := client.Authenticate(ctx)
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			// If no email was provided, ask Google who we are.
			if email == "" {
				access := domain.AccessToken{Type: token.Type(), Value: token.AccessToken}
				email, err = client.Profile(ctx, access)
				if err != nil {
					return fmt.Errorf("failed to get profile email: %w", err)
				}
			}

			tokenStore := store.NewKeyringTokenStore()
			if err := tokenStore.SaveToken(email, token); err != nil {
				return err
			}

			account := &domain.Account{Username: email, CreatedAt: time.Now()}
			if err := db.CreateAccount(ctx, account); err != nil {
				return fmt.Errorf("failed to store account: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "add", Username: email})
			}

			fmt.Printf("Account added: %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (auto-detected if omitted)")
	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			accounts, err := db.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONAccounts(accounts))
			}

			if len(accounts) == 0 {
				fmt.Println("No accounts configured. Run 'contactsync account add' to add one.")
				return nil
			}

			creds := store.NewCredentials(db, store.NewKeyringTokenStore())
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USERNAME\tTOKEN\tCREATED")
			for _, a := range accounts {
				status := "ok"
				if _, err := creds.Lookup(cmd.Context(), a.Username); err != nil {
					status = "missing"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.Username, status, a.CreatedAt.Format(time.DateOnly))
			}
			return w.Flush()
		},
	}
}

func newAccountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [username]",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			bound, err := boundAddressBooks(cmd.Context(), db, username)
			if err != nil {
				return err
			}

			if err := db.DeleteAccount(cmd.Context(), username); err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			tokenStore := store.NewKeyringTokenStore()
			if err := tokenStore.DeleteToken(username); err != nil {
				// Non-fatal: token may already be gone.
				fmt.Fprintf(os.Stderr, "Warning: could not remove token from keyring: %v\n", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "remove", Username: username})
			}

			fmt.Printf("Account removed: %s\n", username)
			for _, name := range bound {
				fmt.Printf("  %s still syncs with this account and will be skipped until you pick another one.\n", name)
			}
			return nil
		},
	}
}

// boundAddressBooks returns the names of the address books whose saved
// preferences point at username.
func boundAddressBooks(ctx context.Context, db *sqlite.DB, username string) ([]string, error) {
	books, err := db.ListAddressBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list address books: %w", err)
	}
	var names []string
	for _, ab := range books {
		prefs, err := db.LoadPreferences(ctx, ab.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load preferences for %s: %w", ab.Name, err)
		}
		if prefs.Username == username {
			names = append(names, ab.Name)
		}
	}
	return names, nil
}
