package migration

import (
	authdomain "github.com/karobarhq/karobar/internal/auth/domain"
	businessdomain "github.com/karobarhq/karobar/internal/business/domain"
	"github.com/karobarhq/karobar/internal/config"
	productdomain "github.com/karobarhq/karobar/internal/product/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// sqlite and mysql are dev conveniences; let gorm shape them.
			return conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&businessdomain.Business{},
				&productdomain.Product{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
