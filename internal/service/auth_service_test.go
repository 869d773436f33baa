package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/model"
	"backend/pkg/apperror"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("defaults to student role", func(t *testing.T) {
		user, err := env.auth.Register(ctx, RegisterRequest{
			Username: "gina", Password: "secret123", Email: "gina@campus.edu", StudentID: "S-100",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleStudent, user.Role)
	})

	t.Run("admin request is held as pending_admin", func(t *testing.T) {
		user, err := env.auth.Register(ctx, RegisterRequest{
			Username: "hank", Password: "secret123", Email: "hank@campus.edu", Role: model.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RolePendingAdmin, user.Role)
	})

	t.Run("cannot self-assign superadmin", func(t *testing.T) {
		user, err := env.auth.Register(ctx, RegisterRequest{
			Username: "ivan", Password: "secret123", Email: "ivan@campus.edu", Role: model.RoleSuperadmin,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleStudent, user.Role)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := env.auth.Register(ctx, RegisterRequest{
			Username: "gina", Password: "secret123", Email: "other@campus.edu",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := env.auth.Register(ctx, RegisterRequest{
			Username: "gina2", Password: "secret123", Email: "gina@campus.edu",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestLoginAndSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	client := ClientInfo{UserAgent: "test-agent", IP: "127.0.0.1"}

	_, err := env.auth.Register(ctx, RegisterRequest{
		Username: "judy", Password: "secret123", Email: "judy@campus.edu",
	})
	require.NoError(t, err)

	t.Run("valid credentials return token and session", func(t *testing.T) {
		result, err := env.auth.Login(ctx, LoginRequest{Username: "judy", Password: "secret123"}, client)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "judy", result.User.Username)

		sessions, err := env.auth.ListSessions(ctx, result.User.ID)
		require.NoError(t, err)
		assert.Len(t, sessions, 1)
		assert.Equal(t, "test-agent", sessions[0].UserAgent)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := env.auth.Login(ctx, LoginRequest{Username: "judy", Password: "wrong"}, client)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown user gets the same error as wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, LoginRequest{Username: "nobody", Password: "secret123"}, client)
		require.Error(t, err)
		assert.Equal(t, "Invalid username or password", err.Error())
	})

	t.Run("logout deactivates the session immediately", func(t *testing.T) {
		result, err := env.auth.Login(ctx, LoginRequest{Username: "judy", Password: "secret123"}, client)
		require.NoError(t, err)

		sessions, err := env.auth.ListSessions(ctx, result.User.ID)
		require.NoError(t, err)
		require.NotEmpty(t, sessions)

		sid := sessions[0].ID.String()
		require.NoError(t, env.auth.Logout(ctx, sid))

		session, err := env.sessions.GetByID(ctx, sid)
		require.NoError(t, err)
		assert.False(t, session.Active(time.Now()))
	})

	t.Run("logout-all revokes every session", func(t *testing.T) {
		first, err := env.auth.Login(ctx, LoginRequest{Username: "judy", Password: "secret123"}, client)
		require.NoError(t, err)
		_, err = env.auth.Login(ctx, LoginRequest{Username: "judy", Password: "secret123"}, client)
		require.NoError(t, err)

		require.NoError(t, env.auth.LogoutAll(ctx, first.User.ID))

		sessions, err := env.auth.ListSessions(ctx, first.User.ID)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestResolveAdminRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	newPending := func(t *testing.T, username string) string {
		user, err := env.auth.Register(ctx, RegisterRequest{
			Username: username, Password: "secret123", Email: username + "@campus.edu", Role: model.RoleAdmin,
		})
		require.NoError(t, err)
		return user.ID
	}

	t.Run("approve promotes with admin role", func(t *testing.T) {
		id := newPending(t, "kate")
		user, err := env.adminService.ResolveAdminRequest(ctx, id,
			ResolveAdminRequest{Action: AdminActionApprove, AdminRole: "inventory"})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.Equal(t, "inventory", user.AdminRole)
	})

	t.Run("approve without admin role is invalid", func(t *testing.T) {
		id := newPending(t, "liam")
		_, err := env.adminService.ResolveAdminRequest(ctx, id,
			ResolveAdminRequest{Action: AdminActionApprove})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("reject demotes to student", func(t *testing.T) {
		id := newPending(t, "mona")
		user, err := env.adminService.ResolveAdminRequest(ctx, id,
			ResolveAdminRequest{Action: AdminActionReject})
		require.NoError(t, err)
		assert.Equal(t, model.RoleStudent, user.Role)
		assert.Empty(t, user.AdminRole)
	})

	t.Run("non-pending users have no request", func(t *testing.T) {
		student := env.createUser(t, "nina", model.RoleStudent)
		_, err := env.adminService.ResolveAdminRequest(ctx, student.ID.String(),
			ResolveAdminRequest{Action: AdminActionApprove, AdminRole: "inventory"})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("listings reflect role changes", func(t *testing.T) {
		id := newPending(t, "oscar")

		pending, err := env.adminService.ListPendingAdminRequests(ctx)
		require.NoError(t, err)
		found := false
		for _, u := range pending {
			if u.ID == id {
				found = true
			}
		}
		assert.True(t, found)

		_, err = env.adminService.ResolveAdminRequest(ctx, id,
			ResolveAdminRequest{Action: AdminActionApprove, AdminRole: "lending"})
		require.NoError(t, err)

		admins, err := env.adminService.ListAdmins(ctx)
		require.NoError(t, err)
		found = false
		for _, u := range admins {
			if u.ID == id {
				found = true
			}
		}
		assert.True(t, found)
	})
}
