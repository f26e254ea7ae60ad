// AngelaMos | 2026
// keygen.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/templates/storefront/internal/auth"
)

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the ES256 key pair used to sign session tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			privatePath, _ := cmd.Flags().GetString("private")
			publicPath, _ := cmd.Flags().GetString("public")

			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", privatePath, publicPath)
			return nil
		},
	}

	cmd.Flags().String("private", "keys/private.pem", "private key output path")
	cmd.Flags().String("public", "keys/public.pem", "public key output path")

	return cmd
}
