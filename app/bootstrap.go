// app/bootstrap.go
package app

import (
	"context"

	"go.uber.org/zap"

	"school_equipment_portal/auth"
	"school_equipment_portal/config"
	"school_equipment_portal/db"
	"school_equipment_portal/models"
)

// BootstrapFirstAdmin creates an initial admin account from the environment
// when the portal starts with no admin at all. Without it the first admin
// would have to be promoted by hand in the database.
func BootstrapFirstAdmin(ctx context.Context, cfg config.Config, repo *db.Repo, logger *zap.Logger) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		logger.Warn("bootstrap admin count failed", zap.Error(err))
		return
	}
	if n > 0 {
		return
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Warn("bootstrap admin hash failed", zap.Error(err))
		return
	}
	u, err := repo.CreateUser(ctx, cfg.AdminUsername, hash, models.RoleAdmin)
	if err != nil {
		logger.Warn("bootstrap admin create failed", zap.Error(err))
		return
	}
	logger.Info("created first admin user", zap.String("username", u.Username))
}
