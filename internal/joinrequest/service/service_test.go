package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	"github.com/brightfund/brightfund/internal/auth/password"
	authrepo "github.com/brightfund/brightfund/internal/auth/repository"
	"github.com/brightfund/brightfund/internal/joinrequest/domain"
	"github.com/brightfund/brightfund/internal/joinrequest/repository"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	orgrepo "github.com/brightfund/brightfund/internal/organization/repository"
	orgservice "github.com/brightfund/brightfund/internal/organization/service"
	"github.com/brightfund/brightfund/internal/validation"
	dbpkg "github.com/brightfund/brightfund/pkg/db"
)

type fixture struct {
	svc   domain.Service
	users authdomain.Repository
	conn  *gorm.DB
	orgID snowflake.ID
	admin authdomain.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := dbpkg.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&orgdomain.Organization{},
		&authdomain.User{},
		&domain.RegistrationRequest{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	orgs := orgservice.NewService(log, orgrepo.NewRepository(conn), node)
	users := authrepo.NewRepository(conn)

	org, err := orgs.Create(context.Background(), orgdomain.CreateOrganizationRequest{
		Name:  "Hope Alliance",
		Email: "contact@hope.org",
	})
	require.NoError(t, err)
	orgID, err := snowflake.ParseString(org.ID)
	require.NoError(t, err)

	svc := NewService(log, conn, repository.NewRepository(conn), users, orgs, node)
	return &fixture{
		svc:   svc,
		users: users,
		conn:  conn,
		orgID: orgID,
		admin: authdomain.Identity{UserID: snowflake.ID(77), OrgID: orgID, Role: "admin"},
	}
}

func (f *fixture) createReq(email string) domain.CreateRequest {
	return domain.CreateRequest{
		OrgID:           f.orgID.String(),
		FirstName:       "Noah",
		LastName:        "Kim",
		Email:           email,
		Phone:           "555-0102",
		JobTitle:        "Program Manager",
		Department:      "Programs",
		Role:            "program_manager",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	}
}

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)
	assert.Equal(t, "Hope Alliance", resp.OrganizationName)
	assert.Equal(t, "pending", resp.Status)

	var stored domain.RegistrationRequest
	require.NoError(t, f.conn.First(&stored, "email = ?", "noah@hope.org").Error)
	assert.NotEqual(t, "longenough1", stored.PasswordHash)
	assert.True(t, password.Verify("longenough1", stored.PasswordHash))
}

func TestCreateRequestUnknownOrganization(t *testing.T) {
	f := newFixture(t)

	req := f.createReq("noah@hope.org")
	req.OrgID = snowflake.ID(999).String()
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, orgdomain.ErrOrganizationNotFound)
}

func TestCreateRequestRestrictedRole(t *testing.T) {
	f := newFixture(t)

	for _, role := range []string{"admin", "superadmin", "executive_director"} {
		req := f.createReq("noah@hope.org")
		req.Role = role

		_, err := f.svc.Create(context.Background(), req)
		var ruleErr *validation.RuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, "role_not_permitted", ruleErr.Code)
	}
}

func TestDuplicateRequestConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	// A second request while the first is pending is an expected conflict,
	// not an error to retry.
	_, err = f.svc.Create(ctx, f.createReq("Noah@Hope.org"))
	assert.ErrorIs(t, err, domain.ErrRequestExists)
}

func TestResubmitAfterRejection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, f.admin, first.RequestID, "incomplete details")
	require.NoError(t, err)

	second, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestApproveProvisionsUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	decision, err := f.svc.Approve(ctx, f.admin, created.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "approved", decision.Status)
	require.NotEmpty(t, decision.UserID)

	user, err := f.users.FindByEmail(ctx, "noah@hope.org")
	require.NoError(t, err)
	assert.Equal(t, "program_manager", user.Role)
	assert.Equal(t, f.orgID, user.OrgID)
	assert.True(t, user.IsActive)
	assert.True(t, password.Verify("longenough1", user.PasswordHash))

	var stored domain.RegistrationRequest
	require.NoError(t, f.conn.First(&stored, "email = ?", "noah@hope.org").Error)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, f.admin.UserID, stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)
}

func TestDecisionsAreTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.admin, created.RequestID)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.admin, created.RequestID)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

	_, err = f.svc.Reject(ctx, f.admin, created.RequestID, "changed my mind")
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, f.admin, created.RequestID, "   ")
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	decision, err := f.svc.Reject(ctx, f.admin, created.RequestID, "duplicate application")
	require.NoError(t, err)
	assert.Equal(t, "rejected", decision.Status)

	var stored domain.RegistrationRequest
	require.NoError(t, f.conn.First(&stored, "email = ?", "noah@hope.org").Error)
	assert.Equal(t, "duplicate application", stored.RejectionReason)
}

func TestReviewScopedToOrganization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	outsider := authdomain.Identity{UserID: snowflake.ID(88), OrgID: f.orgID + 1, Role: "admin"}

	_, err = f.svc.Approve(ctx, outsider, created.RequestID)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = f.svc.List(ctx, outsider, f.orgID.String(), domain.ListFilter{})
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
}

func TestListFilterSearchAndStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.createReq("noah@hope.org"))
	require.NoError(t, err)

	second := f.createReq("mira@hope.org")
	second.FirstName = "Mira"
	second.JobTitle = "Accountant"
	second.Department = "Finance"
	second.Role = "accountant"
	secondResp, err := f.svc.Create(ctx, second)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, f.admin, first.RequestID)
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, f.admin, secondResp.RequestID, "position filled")
	require.NoError(t, err)

	third := f.createReq("tariq@hope.org")
	third.FirstName = "Tariq"
	_, err = f.svc.Create(ctx, third)
	require.NoError(t, err)

	all, err := f.svc.List(ctx, f.admin, f.orgID.String(), domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Requests, 3)
	assert.Equal(t, domain.Statistics{Pending: 1, Approved: 1, Rejected: 1, Total: 3}, all.Statistics)

	pending, err := f.svc.List(ctx, f.admin, f.orgID.String(), domain.ListFilter{Status: domain.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending.Requests, 1)
	assert.Equal(t, "tariq@hope.org", pending.Requests[0].Email)

	byDept, err := f.svc.List(ctx, f.admin, f.orgID.String(), domain.ListFilter{Search: "finance"})
	require.NoError(t, err)
	require.Len(t, byDept.Requests, 1)
	assert.Equal(t, "mira@hope.org", byDept.Requests[0].Email)

	_, err = f.svc.List(ctx, f.admin, f.orgID.String(), domain.ListFilter{Status: "bogus"})
	var ruleErr *validation.RuleError
	assert.ErrorAs(t, err, &ruleErr)
}
