package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightfund/brightfund/internal/joinrequest/domain"
	"github.com/brightfund/brightfund/internal/migration"
	dbpkg "github.com/brightfund/brightfund/pkg/db"
)

func newTestRepository(t *testing.T) domain.Repository {
	t.Helper()

	conn, err := dbpkg.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.RegistrationRequest{}))
	require.NoError(t, migration.EnsureActiveRequestIndex(conn))

	return NewRepository(conn)
}

func pendingRequest(id int64, status domain.RequestStatus) *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		ID:           snowflake.ID(id),
		OrgID:        snowflake.ID(100),
		FirstName:    "Noah",
		LastName:     "Kim",
		Email:        "noah@hope.org",
		Role:         "program_manager",
		PasswordHash: "x",
		Status:       status,
		RequestedAt:  time.Now().UTC(),
	}
}

// Two submitters racing past the service pre-check both reach Create; the
// partial unique index must let exactly one of them through.
func TestActiveRequestUniqueIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pendingRequest(1, domain.StatusPending)))

	err := repo.Create(ctx, pendingRequest(2, domain.StatusPending))
	require.Error(t, err)
	assert.True(t, dbpkg.IsDuplicateKeyErr(err))
}

func TestRejectedRequestDoesNotBlockResubmission(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rejected := pendingRequest(1, domain.StatusRejected)
	rejected.RejectionReason = "incomplete details"
	require.NoError(t, repo.Create(ctx, rejected))

	// Rejected rows stay behind as history; a fresh pending request for the
	// same pair is a new row.
	require.NoError(t, repo.Create(ctx, pendingRequest(2, domain.StatusPending)))

	// The fresh pending row is non-rejected and blocks further submissions.
	err := repo.Create(ctx, pendingRequest(3, domain.StatusPending))
	require.Error(t, err)
	assert.True(t, dbpkg.IsDuplicateKeyErr(err))
}
