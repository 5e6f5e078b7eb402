package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, req *RegistrationRequest) error
	FindByID(ctx context.Context, id snowflake.ID) (*RegistrationRequest, error)
	// HasActiveRequest reports whether a non-rejected request exists for the
	// organization and email pair.
	HasActiveRequest(ctx context.Context, orgID snowflake.ID, email string) (bool, error)
	List(ctx context.Context, orgID snowflake.ID, filter ListFilter) ([]RegistrationRequest, error)
	Statistics(ctx context.Context, orgID snowflake.ID) (Statistics, error)
	// DecideIfPending applies the request's reviewed state with a
	// conditional update guarded on status still being pending. It reports
	// false when another decision won the race.
	DecideIfPending(ctx context.Context, req *RegistrationRequest) (bool, error)
}
