package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/console-server/internal/api/http/context"
	"github.com/dtroode/console-server/internal/model"
	"github.com/dtroode/console-server/internal/testutil"
)

// MockAccounts mocks the AccountsService interface
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

func withUser(c echo.Context, user model.User) echo.Context {
	ctx := apicontext.NewManager().SetUserToContext(c.Request().Context(), user)
	c.SetRequest(c.Request().WithContext(ctx))
	return c
}

func TestSelf_Current(t *testing.T) {
	user := model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", IsActive: true}

	t.Run("returns calling user", func(t *testing.T) {
		h := NewSelf(&MockAccounts{}, apicontext.NewManager(), 10, 100, testutil.MakeNoopLogger())
		c, rec := newAuthContext(t, http.MethodGet, "/api/self/current", nil)
		c = withUser(c, user)

		require.NoError(t, h.Current(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp userResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("no user in context", func(t *testing.T) {
		h := NewSelf(&MockAccounts{}, apicontext.NewManager(), 10, 100, testutil.MakeNoopLogger())
		c, _ := newAuthContext(t, http.MethodGet, "/api/self/current", nil)

		require.ErrorIs(t, h.Current(c), model.ErrUnauthenticated)
	})
}

func TestSelf_Users(t *testing.T) {
	listed := []model.User{
		{ID: uuid.New(), Email: "a@example.com"},
		{ID: uuid.New(), Email: "b@example.com"},
	}

	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
		wantPage   int
	}{
		{name: "defaults", query: "", wantOffset: 0, wantLimit: 10, wantPage: 1},
		{name: "explicit page and size", query: "?page=3&size=20", wantOffset: 40, wantLimit: 20, wantPage: 3},
		{name: "size clamped to max", query: "?size=1000", wantOffset: 0, wantLimit: 100, wantPage: 1},
		{name: "garbage params fall back", query: "?page=x&size=y", wantOffset: 0, wantLimit: 10, wantPage: 1},
		{name: "negative page normalized", query: "?page=-2", wantOffset: 0, wantLimit: 10, wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &MockAccounts{}
			accounts.On("ListUsers", mock.Anything, tt.wantOffset, tt.wantLimit).Return(listed, int64(12), nil)

			h := NewSelf(accounts, apicontext.NewManager(), 10, 100, testutil.MakeNoopLogger())
			c, rec := newAuthContext(t, http.MethodGet, "/api/self/users"+tt.query, nil)

			require.NoError(t, h.Users(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp userListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Len(t, resp.Users, 2)
			assert.EqualValues(t, 12, resp.Total)
			assert.Equal(t, tt.wantPage, resp.Page)
			assert.Equal(t, tt.wantLimit, resp.Size)
			accounts.AssertExpectations(t)
		})
	}
}

func TestSelf_UpdateCurrent(t *testing.T) {
	user := model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", IsEditable: true}
	newName := "Alice Updated"

	t.Run("updates profile", func(t *testing.T) {
		accounts := &MockAccounts{}
		accounts.On("UpdateProfile", mock.Anything, user.ID, &newName, (*string)(nil)).
			Return(model.User{ID: user.ID, Name: newName, Email: user.Email}, nil)

		h := NewSelf(accounts, apicontext.NewManager(), 10, 100, testutil.MakeNoopLogger())
		c, rec := newAuthContext(t, http.MethodPut, "/api/self/update-current", map[string]string{"name": newName})
		c = withUser(c, user)

		require.NoError(t, h.UpdateCurrent(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp userResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, newName, resp.Name)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		h := NewSelf(&MockAccounts{}, apicontext.NewManager(), 10, 100, testutil.MakeNoopLogger())
		c, _ := newAuthContext(t, http.MethodPut, "/api/self/update-current", map[string]string{})
		c = withUser(c, user)

		err := h.UpdateCurrent(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("immutable account propagates forbidden", func(t *testing.T) {
		accounts := &MockAccounts{}
		accounts.On("UpdateProfile", mock.Anything, user.ID, &newName, (*string)(nil)).
			Return(model.User{}, model.ErrForbidden)

		h := NewSelf(accounts, apicontext.NewManager(), 10, 100, testutil.MakeNoopLogger())
		c, _ := newAuthContext(t, http.MethodPut, "/api/self/update-current", map[string]string{"name": newName})
		c = withUser(c, user)

		require.ErrorIs(t, h.UpdateCurrent(c), model.ErrForbidden)
	})
}
