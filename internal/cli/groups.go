package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/provider"
)

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups [username]",
		Short: "List the groups that can be synced for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if username == domain.NoUsername {
				return fmt.Errorf("pick an account, not %q", domain.NoUsername)
			}

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

			ctrl, err := newController(db, client, newPrompter(false), log)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			fetch := ctrl.SetUsername(ctx, username)
			if fetch == nil {
				return fmt.Errorf("%w for %s; run 'contactsync account add' first", app.ErrMissingCredential, username)
			}
			res := fetch(ctx)
			if errors.Is(res.Err, provider.ErrOffline) {
				return fmt.Errorf("cannot reach Google: %w", res.Err)
			}
			if res.Err != nil {
				return fmt.Errorf("failed to fetch groups: %w", res.Err)
			}
			ctrl.ApplyGroups(res)

			entries := ctrl.Catalog().Entries()
			if jsonFlag {
				return printJSON(toJSONGroups(entries))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tLABEL\tKIND")
			for _, e := range entries {
				kind := "remote"
				if e.Default {
					kind = "default"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Value, e.Label, kind)
			}
			return w.Flush()
		},
	}
}
