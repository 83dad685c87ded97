package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"asyncpfs/internal/domain"
	"asyncpfs/internal/encoding"
)

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <peer> <text>",
		Short: "Encrypt text under the session with a peer and print it as base58",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := wire.Sessions.Encrypt(domain.Username(args[0]), []byte(args[1]))
			if err != nil {
				return err
			}
			text, err := encoding.EncodeMessage(msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <peer> <message>",
		Short: "Decrypt a base58 message from a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := encoding.DecodeMessage(args[1])
			if err != nil {
				return err
			}
			pt, err := wire.Sessions.Decrypt(domain.Username(args[0]), msg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pt))
			return nil
		},
	}
}
