package commands

import (
	"context"

	"github.com/spf13/cobra"

	"asyncpfs/internal/app"
	"asyncpfs/internal/observability"
)

var (
	home         string
	passphrase   string
	directoryURL string
	suiteName    string
	storeBackend string
	logLevel     string
	username     string
	additional   string

	wire *app.Wire
)

// Execute runs the CLI until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "asyncpfs",
		Short:        "Asynchronous forward-secret sessions from published key bundles",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)

			log := observability.NewConsoleLogger(cmd.ErrOrStderr()).WithLevel(cfg.LogLevel)
			w, err := app.NewWire(cfg, passphrase, log)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "config dir (default $ASYNCPFS_HOME or ~/.asyncpfs)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting keys and sessions")
	pf.StringVar(&directoryURL, "directory", "", "directory base URL (e.g. http://127.0.0.1:8080)")
	pf.StringVar(&suiteName, "suite", "", "primitive suite name")
	pf.StringVar(&storeBackend, "store", "", "session store: file or bolt")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&additional, "ad", "", "associated data bound to the session (default: both identity keys)")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		registerCmd(),
		startSessionCmd(),
		acceptSessionCmd(),
		encryptCmd(),
		decryptCmd(),
		sessionCmd(),
	)
	return root
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command, cfg *app.Config) {
	flags := cmd.Flags()
	if flags.Changed("directory") {
		cfg.DirectoryURL = directoryURL
	}
	if flags.Changed("suite") {
		cfg.Suite = suiteName
	}
	if flags.Changed("store") {
		cfg.SessionStore = storeBackend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
}

func additionalData() []byte {
	if additional == "" {
		return nil
	}
	return []byte(additional)
}
