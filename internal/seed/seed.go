// Package seed bootstraps the initial admin account from environment
// configuration so a fresh install is usable without manual setup.
package seed

import (
	"context"
	"errors"

	authdomain "github.com/karobarhq/karobar/internal/auth/domain"
	"github.com/karobarhq/karobar/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("seed",
	fx.Invoke(EnsureAdminUser),
)

// EnsureAdminUser creates the admin account named by ADMIN_EMAIL /
// ADMIN_PASSWORD when it does not exist yet. Missing configuration
// skips seeding rather than failing startup.
func EnsureAdminUser(cfg config.Config, log *zap.Logger, authSvc authdomain.Service) error {
	logger := log.Named("seed")

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Info("skipping admin bootstrap, ADMIN_EMAIL and ADMIN_PASSWORD not set")
		return nil
	}

	_, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrUserExists) {
			logger.Info("admin user already exists")
			return nil
		}
		return err
	}

	logger.Info("admin user created", zap.String("email", cfg.AdminEmail))
	return nil
}
