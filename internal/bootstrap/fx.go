package bootstrap

import (
	"go.uber.org/fx"

	"github.com/brightfund/brightfund/internal/bootstrap/service"
)

var Module = fx.Module("bootstrap.service",
	fx.Provide(service.NewService),
)
