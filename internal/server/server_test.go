package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	authdomain "github.com/brightfund/brightfund/internal/auth/domain"
	bootstrapdomain "github.com/brightfund/brightfund/internal/bootstrap/domain"
	"github.com/brightfund/brightfund/internal/config"
	invitationdomain "github.com/brightfund/brightfund/internal/invitation/domain"
	joinrequestdomain "github.com/brightfund/brightfund/internal/joinrequest/domain"
	orgdomain "github.com/brightfund/brightfund/internal/organization/domain"
	staffdomain "github.com/brightfund/brightfund/internal/staff/domain"
)

type fakeAuthService struct {
	identities map[string]authdomain.Identity
	loginErr   error
}

func (f *fakeAuthService) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	return &authdomain.User{ID: snowflake.ID(200), Email: req.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &authdomain.LoginResult{AccessToken: "tenant-token", ExpiresAt: time.Now().Add(time.Hour), Role: "admin"}, nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (authdomain.Identity, error) {
	identity, ok := f.identities[rawToken]
	if !ok {
		return authdomain.Identity{}, authdomain.ErrInvalidToken
	}
	return identity, nil
}

func (f *fakeAuthService) SystemLogin(ctx context.Context, username, password string) (*authdomain.LoginResult, error) {
	if username != "system" || password != "root-pass" {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &authdomain.LoginResult{AccessToken: "system-token", ExpiresAt: time.Now().Add(time.Hour), Role: "superadmin"}, nil
}

type fakeBootstrapService struct {
	orgCalls   int
	adminCalls int
	adminErr   error
}

func (f *fakeBootstrapService) CreateOrganization(ctx context.Context, req orgdomain.CreateOrganizationRequest) (*orgdomain.OrganizationResponse, error) {
	f.orgCalls++
	return &orgdomain.OrganizationResponse{ID: snowflake.ID(100).String(), Name: req.Name}, nil
}

func (f *fakeBootstrapService) CreateAdmin(ctx context.Context, req bootstrapdomain.CreateAdminRequest) (*bootstrapdomain.AdminResponse, error) {
	f.adminCalls++
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	return &bootstrapdomain.AdminResponse{ID: snowflake.ID(200).String(), OrgID: req.OrgID, Role: "admin"}, nil
}

type fakeStaffService struct {
	lastActor *authdomain.Identity
	err       error
}

func (f *fakeStaffService) Register(ctx context.Context, actor *authdomain.Identity, req staffdomain.RegisterRequest) (*staffdomain.StaffResponse, error) {
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &staffdomain.StaffResponse{ID: snowflake.ID(300).String(), Role: req.Role, IsActive: true}, nil
}

type fakeInviteService struct {
	calls int
}

func (f *fakeInviteService) Invite(ctx context.Context, actor authdomain.Identity, req invitationdomain.InviteRequest) (*invitationdomain.InviteResponse, error) {
	f.calls++
	return &invitationdomain.InviteResponse{ID: snowflake.ID(400).String(), Email: req.Email, Role: req.Role, Status: "pending"}, nil
}

type fakeJoinRequestService struct {
	createErr  error
	decideErr  error
	lastSearch string
}

func (f *fakeJoinRequestService) Create(ctx context.Context, req joinrequestdomain.CreateRequest) (*joinrequestdomain.CreateResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &joinrequestdomain.CreateResponse{RequestID: snowflake.ID(500).String(), OrganizationName: "Hope Alliance", Status: "pending"}, nil
}

func (f *fakeJoinRequestService) List(ctx context.Context, actor authdomain.Identity, orgID string, filter joinrequestdomain.ListFilter) (*joinrequestdomain.ListResponse, error) {
	f.lastSearch = filter.Search
	if actor.OrgID.String() != orgID {
		return nil, authdomain.ErrForbidden
	}
	return &joinrequestdomain.ListResponse{Statistics: joinrequestdomain.Statistics{Pending: 1, Total: 1}}, nil
}

func (f *fakeJoinRequestService) Approve(ctx context.Context, actor authdomain.Identity, requestID string) (*joinrequestdomain.DecisionResponse, error) {
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	return &joinrequestdomain.DecisionResponse{RequestID: requestID, Status: "approved", UserID: snowflake.ID(600).String()}, nil
}

func (f *fakeJoinRequestService) Reject(ctx context.Context, actor authdomain.Identity, requestID, reason string) (*joinrequestdomain.DecisionResponse, error) {
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	if reason == "" {
		return nil, joinrequestdomain.ErrReasonRequired
	}
	return &joinrequestdomain.DecisionResponse{RequestID: requestID, Status: "rejected"}, nil
}

type fakeOrgService struct{}

func (f *fakeOrgService) Create(ctx context.Context, req orgdomain.CreateOrganizationRequest) (*orgdomain.OrganizationResponse, error) {
	return nil, nil
}

func (f *fakeOrgService) GetByID(ctx context.Context, id string) (*orgdomain.OrganizationResponse, error) {
	return &orgdomain.OrganizationResponse{ID: id, Name: "Hope Alliance"}, nil
}

func (f *fakeOrgService) PublicList(ctx context.Context) ([]orgdomain.PublicListItem, error) {
	return []orgdomain.PublicListItem{{ID: snowflake.ID(100).String(), Name: "Hope Alliance"}}, nil
}

type testEnv struct {
	srv       *Server
	auth      *fakeAuthService
	bootstrap *fakeBootstrapService
	staff     *fakeStaffService
	invites   *fakeInviteService
	joinreq   *fakeJoinRequestService
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := &fakeAuthService{identities: map[string]authdomain.Identity{
		"system-token": {Role: "superadmin", System: true},
		"admin-token":  {UserID: snowflake.ID(1), OrgID: snowflake.ID(100), Role: "admin"},
		"staff-token":  {UserID: snowflake.ID(2), OrgID: snowflake.ID(100), Role: "grant_writer"},
	}}
	bootstrapSvc := &fakeBootstrapService{}
	staffSvc := &fakeStaffService{}
	inviteSvc := &fakeInviteService{}
	joinreqSvc := &fakeJoinRequestService{}

	srv := NewServer(ServerParams{
		Gin:          NewEngine(zaptest.NewLogger(t)),
		Cfg:          config.Config{},
		Authsvc:      auth,
		Orgsvc:       &fakeOrgService{},
		Bootstrapsvc: bootstrapSvc,
		Staffsvc:     staffSvc,
		Invitesvc:    inviteSvc,
		Joinreqsvc:   joinreqSvc,
	})

	return &testEnv{srv: srv, auth: auth, bootstrap: bootstrapSvc, staff: staffSvc, invites: inviteSvc, joinreq: joinreqSvc}
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.srv.Engine().ServeHTTP(resp, req)
	return resp
}

func TestSuperadminLogin(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(http.MethodPost, "/superadmin/login", "", `{"username":"system","password":"root-pass"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/superadmin/login", "", `{"username":"system","password":"wrong"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestSuperadminRoutesRequireSystemToken(t *testing.T) {
	env := newTestServer(t)
	body := `{"name":"Hope Alliance","email":"contact@hope.org"}`

	resp := env.do(http.MethodPost, "/superadmin/organizations", "", body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/superadmin/organizations", "admin-token", body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for tenant token, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/superadmin/organizations", "system-token", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if env.bootstrap.orgCalls != 1 {
		t.Fatalf("expected one bootstrap call, got %d", env.bootstrap.orgCalls)
	}
}

func TestCreateOrganizationAdmin(t *testing.T) {
	env := newTestServer(t)
	body := `{"organization_id":"100","first_name":"Ada","last_name":"Okafor","email":"ada@hope.org","password":"longenough1","confirm_password":"longenough1"}`

	resp := env.do(http.MethodPost, "/superadmin/users", "system-token", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	env.bootstrap.adminErr = orgdomain.ErrOrganizationNotFound
	resp = env.do(http.MethodPost, "/superadmin/users", "system-token", body)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown org, got %d", resp.Code)
	}
}

func TestRegisterStaffTrustLevels(t *testing.T) {
	env := newTestServer(t)
	body := `{"first_name":"Sam","last_name":"Rivera","email":"sam@hope.org","role":"grant_writer","password":"longenough1","confirm_password":"longenough1"}`

	resp := env.do(http.MethodPost, "/auth/register/staff", "", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if env.staff.lastActor != nil {
		t.Fatal("expected nil actor for unauthenticated registration")
	}

	resp = env.do(http.MethodPost, "/auth/register/staff", "admin-token", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if env.staff.lastActor == nil || env.staff.lastActor.Role != "admin" {
		t.Fatal("expected admin actor for authenticated registration")
	}

	// A valid but non-admin token is rejected rather than silently
	// downgraded to self-service rules.
	resp = env.do(http.MethodPost, "/auth/register/staff", "staff-token", body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/auth/register/staff", "bogus-token", body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for invalid token, got %d", resp.Code)
	}
}

func TestRegisterStaffConflict(t *testing.T) {
	env := newTestServer(t)
	env.staff.err = authdomain.ErrUserExists

	resp := env.do(http.MethodPost, "/auth/register/staff", "", `{"email":"sam@hope.org"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	if body.Error.Type != "conflict" || body.Error.Code != "email_exists" {
		t.Fatalf("unexpected error payload: %+v", body.Error)
	}
}

func TestInviteUserRequiresAdmin(t *testing.T) {
	env := newTestServer(t)
	body := `{"first_name":"Lena","last_name":"Voss","email":"lena@hope.org","role":"grant_writer","send_invitation_email":true}`

	resp := env.do(http.MethodPost, "/auth/invite-user", "", body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/auth/invite-user", "staff-token", body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/auth/invite-user", "admin-token", body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if env.invites.calls != 1 {
		t.Fatalf("expected one invite call, got %d", env.invites.calls)
	}
}

func TestPublicOrganizations(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(http.MethodGet, "/public/organizations", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Organizations []orgdomain.PublicListItem `json:"organizations"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Organizations) != 1 || body.Organizations[0].Name != "Hope Alliance" {
		t.Fatalf("unexpected organizations: %+v", body.Organizations)
	}
}

func TestListRoles(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(http.MethodGet, "/public/roles", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = env.do(http.MethodGet, "/public/roles?pathway=self", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = env.do(http.MethodGet, "/public/roles?pathway=bogus", "", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestRegistrationRequestLifecycle(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(http.MethodPost, "/auth/register-request", "", `{"organization_id":"100","email":"noah@hope.org"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	env.joinreq.createErr = joinrequestdomain.ErrRequestExists
	resp = env.do(http.MethodPost, "/auth/register-request", "", `{"organization_id":"100","email":"noah@hope.org"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	resp = env.do(http.MethodGet, "/admin/all-requests/100?search=noah", "admin-token", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if env.joinreq.lastSearch != "noah" {
		t.Fatalf("expected search to pass through, got %q", env.joinreq.lastSearch)
	}

	resp = env.do(http.MethodGet, "/admin/all-requests/999", "admin-token", "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for cross-org listing, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/admin/approve-request", "admin-token", `{"request_id":"500"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = env.do(http.MethodPost, "/admin/reject-request", "admin-token", `{"request_id":"500"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing reason, got %d", resp.Code)
	}

	env.joinreq.decideErr = joinrequestdomain.ErrAlreadyDecided
	resp = env.do(http.MethodPost, "/admin/approve-request", "admin-token", `{"request_id":"500"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for decided request, got %d", resp.Code)
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	env := newTestServer(t)

	resp := env.do(http.MethodGet, "/admin/all-requests/100", "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	resp = env.do(http.MethodGet, "/admin/all-requests/100", "staff-token", "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}
