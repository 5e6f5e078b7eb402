package staff

import (
	"go.uber.org/fx"

	"github.com/brightfund/brightfund/internal/staff/service"
)

var Module = fx.Module("staff.service",
	fx.Provide(service.NewService),
)
