package auth

import (
	"github.com/karobarhq/karobar/internal/auth/repository"
	"github.com/karobarhq/karobar/internal/auth/service"
	"github.com/karobarhq/karobar/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideUserRepository),
	fx.Provide(repository.ProvideSessionRepository),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
