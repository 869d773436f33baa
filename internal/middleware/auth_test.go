package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"
)

const testSecret = "test_secret"

func setupAuthTest(t *testing.T) (*Auth, repository.SessionRepository, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	user := &model.User{
		Username: "alice",
		Email:    "alice@campus.edu",
		Password: "irrelevant",
		Role:     model.RoleStudent,
	}
	require.NoError(t, db.Create(user).Error)

	sessions := repository.NewSessionRepository(db)
	return NewAuth(testSecret, sessions), sessions, user
}

func signToken(t *testing.T, user *model.User, sessionID string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"sid":      sessionID,
		"exp":      expires.Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func requestWith(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	auth, sessions, user := setupAuthTest(t)

	router := gin.New()
	router.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(CtxUserID)})
	})

	session := &model.Session{UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Create(context.Background(), session))
	token := signToken(t, user, session.ID.String(), session.ExpiresAt)

	t.Run("missing header is unauthorized", func(t *testing.T) {
		w := requestWith(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		w := requestWith(router, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		w := requestWith(router, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token with live session passes", func(t *testing.T) {
		w := requestWith(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
	})

	t.Run("revoked session fails before token expiry", func(t *testing.T) {
		require.NoError(t, sessions.Revoke(context.Background(), session.ID.String()))
		w := requestWith(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	auth, sessions, user := setupAuthTest(t)

	router := gin.New()
	router.GET("/protected", auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	session := &model.Session{UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Create(context.Background(), session))

	t.Run("role outside the allowed list is forbidden", func(t *testing.T) {
		token := signToken(t, user, session.ID.String(), session.ExpiresAt)
		w := requestWith(router, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("allowed role passes", func(t *testing.T) {
		admin := *user
		admin.Role = model.RoleAdmin
		token := signToken(t, &admin, session.ID.String(), session.ExpiresAt)
		w := requestWith(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
