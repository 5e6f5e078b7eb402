package auth

import (
	"go.uber.org/fx"

	"github.com/brightfund/brightfund/internal/auth/repository"
	"github.com/brightfund/brightfund/internal/auth/service"
	"github.com/brightfund/brightfund/internal/auth/token"
	"github.com/brightfund/brightfund/internal/config"
)

func newIssuer(cfg config.Config) *token.Issuer {
	return token.NewIssuer(cfg.AuthJWTSecret, cfg.AppName, cfg.AuthTokenTTL)
}

var Module = fx.Module("auth.service",
	fx.Provide(newIssuer),
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
