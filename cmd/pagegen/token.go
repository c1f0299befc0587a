package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/pagegen/internal/auth"
	"github.com/joestump/pagegen/internal/db"
	"github.com/joestump/pagegen/internal/store"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(newTokenCreateCmd(a))
	return cmd
}

// newTokenCreateCmd bootstraps API access: it upserts the user and prints a
// fresh token once.
func newTokenCreateCmd(a *app) *cobra.Command {
	var (
		email, name, role, displayName string
		ttl                            time.Duration
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API token for a user, creating the user when missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if !store.ValidRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}

			database, err := db.New(a.cfg.DB.Driver, a.cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()
			if err := db.Migrate(database, a.cfg.DB.Driver); err != nil {
				return err
			}

			ctx := cmd.Context()
			if displayName == "" {
				displayName = email
			}
			user, err := store.NewUserStore(database).Upsert(ctx, email, displayName, role, a.cfg.AdminEmail)
			if err != nil {
				return fmt.Errorf("upsert user: %w", err)
			}

			plaintext, rec, err := auth.Issue(ctx, auth.NewSQLTokenStore(database), user.ID, name, ttl)
			if err != nil {
				return err
			}
			a.log.Info("token created",
				zap.String("user_id", user.ID),
				zap.String("role", user.Role),
				zap.String("token_id", rec.ID))

			fmt.Fprintln(cmd.OutOrStdout(), plaintext)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&displayName, "display-name", "", "user display name (defaults to the email)")
	cmd.Flags().StringVar(&role, "role", store.RoleEditor, "user role: admin, editor, author or subscriber")
	cmd.Flags().StringVar(&name, "name", "cli", "token name")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime; zero never expires")
	return cmd
}
