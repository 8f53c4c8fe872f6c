package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smart-practice/backend/internal/clock"
	"github.com/smart-practice/backend/internal/config"
	"github.com/smart-practice/backend/internal/migration"
	"github.com/smart-practice/backend/internal/scheduler"
	"github.com/smart-practice/backend/internal/server"
	"github.com/smart-practice/backend/pkg/db"
	"github.com/smart-practice/backend/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
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
