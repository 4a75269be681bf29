package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/callshield/callshield/internal/clock"
	"github.com/callshield/callshield/internal/config"
	"github.com/callshield/callshield/internal/migration"
	"github.com/callshield/callshield/internal/observability"
	"github.com/callshield/callshield/internal/server"
	"github.com/callshield/callshield/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface plus the domain modules it serves
		server.Module,
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
