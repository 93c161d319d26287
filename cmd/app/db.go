package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/wichananm65/beverage-shop/internal/account"
	"github.com/wichananm65/beverage-shop/internal/config"
	"github.com/wichananm65/beverage-shop/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a back-office account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		svc := account.NewService(account.NewPostgresRepository(db), account.NewMemoryTokenStore(),
			account.LogMailer{Log: slog.Default()}, cfg.JWTSecret, cfg.SiteURL)
		p, err := svc.Register(cmd.Context(), adminEmail, adminPassword, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", p.Email, p.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (min 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
