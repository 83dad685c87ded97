package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"asyncpfs/internal/crypto"
	"asyncpfs/internal/domain"
)

// acceptSessionCmd derives the responder side of the session a hello
// describes. The hello is inline JSON, a file path, or "-" for stdin.
func acceptSessionCmd() *cobra.Command {
	var peer string
	cmd := &cobra.Command{
		Use:   "accept-session <hello>",
		Short: "Accept a session from an initiator's hello",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readHello(cmd, args[0])
			if err != nil {
				return err
			}
			var hello domain.InitiatorHello
			if err := json.Unmarshal(raw, &hello); err != nil {
				return fmt.Errorf("parse hello: %w", err)
			}

			sess, err := wire.Sessions.AcceptSession(passphrase, domain.Username(peer), hello, additionalData())
			if err != nil {
				return err
			}
			defer sess.Wipe()

			from := peer
			if from == "" {
				from = hello.Info.Identifier
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session with %s: %s\n", from, crypto.Fingerprint(sess.Identifier))
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "name to store the session under (default: the initiator's identifier)")
	return cmd
}

func readHello(cmd *cobra.Command, arg string) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(strings.TrimSpace(arg), "{"):
		return []byte(arg), nil
	default:
		return os.ReadFile(arg)
	}
}
