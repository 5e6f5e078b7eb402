package invitation

import (
	"go.uber.org/fx"

	"github.com/brightfund/brightfund/internal/invitation/repository"
	"github.com/brightfund/brightfund/internal/invitation/service"
)

var Module = fx.Module("invitation.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
