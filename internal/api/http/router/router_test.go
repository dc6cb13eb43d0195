package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/console-server/internal/api/http/context"
	"github.com/dtroode/console-server/internal/api/http/handler"
	"github.com/dtroode/console-server/internal/model"
	"github.com/dtroode/console-server/internal/testutil"
)

// MockSession mocks the handler.SessionService interface
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Register(ctx context.Context, name, email, password string) (model.User, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockSession) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *MockSession) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *MockSession) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

// MockAccess mocks the middleware.AccessService interface
type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) Resolve(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAccess) Require(ctx context.Context, token, object, action string) (model.User, error) {
	args := m.Called(ctx, token, object, action)
	return args.Get(0).(model.User), args.Error(1)
}

// MockAccounts mocks the handler.AccountsService interface
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) ListUsers(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccounts) UpdateProfile(ctx context.Context, userID uuid.UUID, name, description *string) (model.User, error) {
	args := m.Called(ctx, userID, name, description)
	return args.Get(0).(model.User), args.Error(1)
}

// MockRoleAdmin mocks the handler.RoleAdminService interface
type MockRoleAdmin struct {
	mock.Mock
}

func (m *MockRoleAdmin) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	args := m.Called(ctx, userID, roleName)
	return args.Error(0)
}

func (m *MockRoleAdmin) RemoveRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	args := m.Called(ctx, userID, roleName)
	return args.Error(0)
}

// MockCleanup mocks the handler.CleanupService interface
type MockCleanup struct {
	mock.Mock
}

func (m *MockCleanup) Cleanup(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPinger mocks the Pinger interface
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type testDeps struct {
	session  *MockSession
	access   *MockAccess
	accounts *MockAccounts
	roles    *MockRoleAdmin
	cleanup  *MockCleanup
	pinger   *MockPinger
}

func newTestRouter(t *testing.T) (*Router, *testDeps) {
	t.Helper()
	deps := &testDeps{
		session:  &MockSession{},
		access:   &MockAccess{},
		accounts: &MockAccounts{},
		roles:    &MockRoleAdmin{},
		cleanup:  &MockCleanup{},
		pinger:   &MockPinger{},
	}

	log := testutil.MakeNoopLogger()
	cm := apicontext.NewManager()
	r := New(
		handler.NewAuth(deps.session, time.Hour, true, log),
		handler.NewSelf(deps.accounts, cm, 10, 100, log),
		handler.NewAdmin(deps.roles, deps.cleanup, log),
		deps.access,
		cm,
		deps.pinger,
		log,
	)
	return r, deps
}

func TestRouter_Health(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.pinger.On("Ping", mock.Anything).Return(nil)
	e := r.Register()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRouter_LoginErrorMapped(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.session.On("Login", mock.Anything, "alice@example.com", "wrong").
		Return(model.TokenPair{}, model.ErrInvalidCredentials)
	e := r.Register()

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrInvalidCredentials.Error(), resp["error"])
}

func TestRouter_ProtectedRoutesDemandToken(t *testing.T) {
	r, _ := newTestRouter(t)
	e := r.Register()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/self/current"},
		{http.MethodPut, "/api/self/update-current"},
		{http.MethodGet, "/api/self/users"},
		{http.MethodPost, "/api/admin/users/" + uuid.NewString() + "/roles"},
		{http.MethodPost, "/api/admin/tokens/cleanup"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := httptest.NewRequest(p.method, p.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_PermissionGateMapsForbidden(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.access.On("Require", mock.Anything, "token", "users", "read").
		Return(model.User{}, model.ErrForbidden)
	e := r.Register()

	req := httptest.NewRequest(http.MethodGet, "/api/self/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AuthenticatedCurrent(t *testing.T) {
	r, deps := newTestRouter(t)
	user := model.User{ID: uuid.New(), Email: "alice@example.com", IsActive: true}
	deps.access.On("Resolve", mock.Anything, "token").Return(user, nil)
	e := r.Register()

	req := httptest.NewRequest(http.MethodGet, "/api/self/current", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestRouter_HealthUnavailable(t *testing.T) {
	r, deps := newTestRouter(t)
	deps.pinger.On("Ping", mock.Anything).Return(context.DeadlineExceeded)
	e := r.Register()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
