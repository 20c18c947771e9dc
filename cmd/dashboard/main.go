package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/dashboard/internal/clock"
	"github.com/smallbiznis/dashboard/internal/config"
	"github.com/smallbiznis/dashboard/internal/migration"
	"github.com/smallbiznis/dashboard/internal/notify"
	"github.com/smallbiznis/dashboard/internal/observability"
	"github.com/smallbiznis/dashboard/internal/seed"
	"github.com/smallbiznis/dashboard/internal/server"
	"github.com/smallbiznis/dashboard/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		notify.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// Schema before data, data before traffic
		migration.Module,
		seed.Module,
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
