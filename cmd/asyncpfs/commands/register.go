package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"asyncpfs/internal/domain"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Generate prekeys and publish your bundle to the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := wire.RequireDirectory()
			if err != nil {
				return err
			}
			name := domain.Username(args[0])

			// A fresh long-term key and a batch of one-time keys.
			if _, _, err := wire.Prekeys.GenerateAndStorePreKeys(passphrase, wire.Config.OneTimeKeys); err != nil {
				return err
			}
			bundle, err := wire.Prekeys.LoadResponderBundle(passphrase, name)
			if err != nil {
				return err
			}
			if err := dir.Register(cmd.Context(), bundle); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%d one-time keys offered)\n", name, len(bundle.OneTimeKeys))
			return nil
		},
	}
}
