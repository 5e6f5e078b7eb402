package joinrequest

import (
	"go.uber.org/fx"

	"github.com/brightfund/brightfund/internal/joinrequest/repository"
	"github.com/brightfund/brightfund/internal/joinrequest/service"
)

var Module = fx.Module("joinrequest.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
