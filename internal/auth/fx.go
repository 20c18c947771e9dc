package auth

import (
	"github.com/smallbiznis/dashboard/internal/auth/repository"
	"github.com/smallbiznis/dashboard/internal/auth/service"
	"github.com/smallbiznis/dashboard/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	session.Module,
)
