package middleware

import (
	"net/http"
	"strings"
	"time"

	"backend/internal/repository"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware.
const (
	CtxUserID    = "userID"
	CtxUsername  = "username"
	CtxUserRole  = "userRole"
	CtxStudentID = "studentID"
	CtxAdminRole = "adminRole"
	CtxSessionID = "sessionID"
)

// Auth validates bearer tokens and enforces role checks. The signing secret
// and session store are injected; token verification also consults the
// session record, so a logout takes effect immediately rather than at expiry.
type Auth struct {
	secret   []byte
	sessions repository.SessionRepository
}

func NewAuth(secret string, sessions repository.SessionRepository) *Auth {
	return &Auth{secret: []byte(secret), sessions: sessions}
}

// Secret exposes the signing key for components that verify tokens outside
// the middleware chain (the websocket upgrade handshake).
func (a *Auth) Secret() []byte {
	return a.secret
}

// RequireAuth validates the Authorization header and the backing session.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := a.authenticate(c)
		if !ok {
			return
		}
		a.setContext(c, claims)
		c.Next()
	}
}

// RequireRole validates the token and checks the user's role against the
// allowed list.
func (a *Auth) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := a.authenticate(c)
		if !ok {
			return
		}

		userRole, _ := claims["role"].(string)
		roleAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		a.setContext(c, claims)
		c.Next()
	}
}

func (a *Auth) authenticate(c *gin.Context) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return nil, false
	}

	// The token alone is not enough: the session it was issued under must
	// still be live.
	sid, _ := claims["sid"].(string)
	if sid == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return nil, false
	}
	session, err := a.sessions.GetByID(c.Request.Context(), sid)
	if err != nil || !session.Active(time.Now()) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Session is no longer valid"))
		return nil, false
	}

	return claims, true
}

func (a *Auth) setContext(c *gin.Context, claims jwt.MapClaims) {
	c.Set(CtxUserID, claims["sub"])
	c.Set(CtxUsername, claims["username"])
	c.Set(CtxUserRole, claims["role"])
	c.Set(CtxStudentID, claims["student_id"])
	c.Set(CtxAdminRole, claims["admin_role"])
	c.Set(CtxSessionID, claims["sid"])
}
