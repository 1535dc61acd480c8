package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/config"
	"github.com/lu-zhengda/contactsync/internal/logging"
	"github.com/lu-zhengda/contactsync/internal/provider/people"
	"github.com/lu-zhengda/contactsync/internal/store"
	"github.com/lu-zhengda/contactsync/internal/store/sqlite"
	"github.com/lu-zhengda/contactsync/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool

	// logLevel overrides the configured log level.
	logLevel string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "contactsync",
		Short:   "Google contacts sync accounts",
		Long:    "Bind local address books to Google accounts and choose what gets synchronized.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logFile, err := logging.OpenFile(config.DataDir())
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close()
			log := newLogger(cfg, logFile)

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			client, err := newPeopleClient(cfg, log)
			if err != nil {
				return err
			}

			prompter := tui.NewPrompter()
			ctrl, err := newController(db, client, prompter, log)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), ctrl, prompter, db, cfg.Accounts.Default)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("contactsync %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.AddCommand(newAccountCmd())
	root.AddCommand(newAddressBookCmd())
	root.AddCommand(newPrefsCmd())
	root.AddCommand(newGroupsCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB creates the data directory and opens the SQLite database.
func openDB() (*sqlite.DB, error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "contactsync.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger from config, honoring --log-level.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return logging.New(level, w)
}

// newPeopleClient builds the Google client from config. It fails when no
// OAuth credentials are configured.
func newPeopleClient(cfg *config.Config, log zerolog.Logger) (*people.Client, error) {
	timeout, err := cfg.HTTP.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	client := people.New(people.Options{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		TokenURL:     cfg.Google.TokenURL,
		Endpoint:     cfg.Google.PeopleEndpoint,
		Timeout:      timeout,
	}, log)
	if err := client.EnsureCredentials(); err != nil {
		return nil, err
	}
	return client, nil
}

// newController wires the account controller to the database, the keyring
// and the Google client.
func newController(db *sqlite.DB, client *people.Client, prompter app.Prompter, log zerolog.Logger) (*app.Controller, error) {
	creds := store.NewCredentials(db, store.NewKeyringTokenStore())
	ctrl, err := app.NewController(app.Deps{
		Store:       db,
		Credentials: creds,
		Exchanger:   client,
		Fetcher:     client,
		Prompter:    prompter,
		Log:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	return ctrl, nil
}

// localClient returns a Google client for commands that never reach the
// network, so they work without OAuth credentials.
func localClient() *people.Client {
	return people.New(people.Options{}, zerolog.Nop())
}
