package organization

import (
	"go.uber.org/fx"

	"github.com/brightfund/brightfund/internal/organization/repository"
	"github.com/brightfund/brightfund/internal/organization/service"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
