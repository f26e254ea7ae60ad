// AngelaMos | 2026
// promote.go

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/templates/storefront/internal/config"
	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/user"
)

func promoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant the admin role to a registered user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				return errors.New("--email is required")
			}
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			mongo, err := core.NewMongo(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer mongo.Close(context.Background()) //nolint:errcheck // process exits next

			u, err := user.NewService(user.NewRepository(mongo.DB)).Promote(ctx, email)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					return fmt.Errorf("no user registered with %s", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now an admin\n", u.Email, u.ID.Hex())
			return nil
		},
	}

	cmd.Flags().String("email", "", "email of the user to promote")

	return cmd
}
