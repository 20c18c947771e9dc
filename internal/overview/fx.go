package overview

import (
	"github.com/smallbiznis/dashboard/internal/overview/service"
	"go.uber.org/fx"
)

// Module depends on the invoice and customer repositories.
var Module = fx.Module("overview.service",
	fx.Provide(service.New),
)
