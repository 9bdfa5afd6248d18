package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/karobarhq/karobar/internal/config"
	"github.com/karobarhq/karobar/internal/migration"
	"github.com/karobarhq/karobar/internal/seed"
	"github.com/karobarhq/karobar/internal/server"
	"github.com/karobarhq/karobar/pkg/db"
	"github.com/karobarhq/karobar/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface and the domain modules it pulls in
		server.Module,

		seed.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
