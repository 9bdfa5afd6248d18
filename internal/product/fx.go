package product

import (
	"github.com/karobarhq/karobar/internal/product/repository"
	"github.com/karobarhq/karobar/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
