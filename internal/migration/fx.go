package migration

import (
	"context"

	"github.com/smallbiznis/dashboard/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(h db.Handles, log *zap.Logger) error {
		return Run(context.Background(), h, log.Named("migration"))
	}),
)
