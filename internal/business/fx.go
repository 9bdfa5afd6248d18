package business

import (
	"github.com/karobarhq/karobar/internal/business/repository"
	"github.com/karobarhq/karobar/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
