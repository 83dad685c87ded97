package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or drop stored sessions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <peer>",
			Short: "Print the session fingerprint for a peer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, ok, err := wire.Sessions.GetSession(domain.Username(args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no session with %q", args[0])
				}
				defer s.Wipe()
				fmt.Fprintf(cmd.OutOrStdout(), "Session: %s\nAssociated data: %d bytes\n",
					crypto.Fingerprint(s.Identifier), len(s.AdditionalData))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear <peer>",
			Short: "Delete the session with a peer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := wire.Sessions.ClearSession(domain.Username(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared session with %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
