package migration

import "gorm.io/gorm"

// activeRequestIndexDDL backs the one-active-request-per-(org,email)
// invariant: at most one non-rejected registration request per pair.
// Postgres gets it through the versioned migration; this DDL covers the
// AutoMigrate path, where gorm tags cannot express a partial index.
const activeRequestIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS ux_registration_requests_active ` +
	`ON registration_requests (org_id, email) WHERE status <> 'rejected'`

// EnsureActiveRequestIndex creates the partial unique index on databases
// provisioned via AutoMigrate. MySQL cannot express partial indexes; there
// the service-level pre-check is the only guard and callers must skip this.
func EnsureActiveRequestIndex(conn *gorm.DB) error {
	return conn.Exec(activeRequestIndexDDL).Error
}
