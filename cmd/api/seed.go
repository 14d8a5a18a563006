package main

import (
	"github.com/kuma-mall/admin-backend/internal/modules/admin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedUsername string
	seedPassword string
)

// seedAdminCmd bootstraps the first SUPER_ADMIN so the dashboard can be logged into.
var seedAdminCmd = &cobra.Command{
	Use:     "seed-admin",
	Short:   "Create the first super admin if no admin exists",
	Example: `  kuma-admin seed-admin --username jumu --password 'changeme123'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc := admin.NewService(admin.NewPostgresRepository(db), logger)
		created, err := svc.SeedSuperAdmin(cmd.Context(), seedUsername, seedPassword)
		if err != nil {
			return err
		}
		if !created {
			logger.Info("admins already exist, nothing seeded")
			return nil
		}
		logger.Info("super admin seeded", zap.String("username", seedUsername))
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedUsername, "username", "", "username of the super admin")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "initial password (at least 8 characters)")
	_ = seedAdminCmd.MarkFlagRequired("username")
	_ = seedAdminCmd.MarkFlagRequired("password")
}
