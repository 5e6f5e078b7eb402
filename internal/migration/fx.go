package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/config"
	invitationdomain "github.com/brightfund/brightfund/internal/invitation/domain"
	joinrequestdomain "github.com/brightfund/brightfund/internal/joinrequest/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	"github.com/brightfund/brightfund/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Dev and sqlite deployments take the schema straight from the
			// models; postgres gets the versioned migration path.
			if err := conn.AutoMigrate(
				&orgdomain.Organization{},
				&authdomain.User{},
				&invitationdomain.Invitation{},
				&joinrequestdomain.RegistrationRequest{},
			); err != nil {
				return err
			}
			// MySQL has no partial indexes; the service pre-check is the
			// only uniqueness guard there.
			if cfg.DBType != "mysql" {
				if err := EnsureActiveRequestIndex(conn); err != nil {
					return err
				}
			}
		}

		if cfg.DefaultOrgID != 0 {
			return seed.EnsureDefaultOrg(conn, cfg.DefaultOrgID)
		}
		return nil
	}),
)
