package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

// startSessionCmd runs the agreement against the peer's published bundle,
// stores the session and prints the hello the peer needs to accept it.
func startSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-session <peer>",
		Short: "Establish a session with a peer and print the hello to send them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.Username(args[0])
			if _, err := wire.RequireDirectory(); err != nil {
				return err
			}

			sess, hello, err := wire.Sessions.InitiateSession(
				cmd.Context(), passphrase, domain.Username(username), peer, additionalData())
			if err != nil {
				return fmt.Errorf("starting session with %q: %w", peer, err)
			}
			defer sess.Wipe()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(hello); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Session with %s: %s\n", peer, crypto.Fingerprint(sess.Identifier))
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "your username (same as you registered with)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
