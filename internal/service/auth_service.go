package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for request validation
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role"`
	StudentID string `json:"student_id"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ClientInfo carries transport-level metadata recorded with a session.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// UserResponse returns a User without exposing the password hash.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StudentID string `json:"student_id,omitempty"`
	AdminRole string `json:"admin_role,omitempty"`
	CreatedAt string `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AuthService defines registration, login and session management.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest, client ClientInfo) (*LoginResponse, error)
	Me(ctx context.Context, userID string) (*UserResponse, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutAll(ctx context.Context, userID string) error
	ListSessions(ctx context.Context, userID string) ([]model.Session, error)
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func mapUserToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		StudentID: user.StudentID,
		AdminRole: user.AdminRole,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	// Requesting the admin role only queues the account for superadmin
	// approval. Any other value is stored as plain student, regardless of
	// what the client sent.
	role := model.RoleStudent
	if req.Role == model.RoleAdmin {
		role = model.RolePendingAdmin
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("Username or email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      role,
		StudentID: req.StudentID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest, client ClientInfo) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("Invalid username or password")
	}

	session := &model.Session{
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IP:        client.IP,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID.String(),
		"username":   user.Username,
		"role":       user.Role,
		"student_id": user.StudentID,
		"admin_role": user.AdminRole,
		"sid":        session.ID.String(),
		"iat":        time.Now().Unix(),
		"exp":        session.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: signed,
		User:  *mapUserToResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return mapUserToResponse(user), nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessions.RevokeAllForUser(ctx, userID)
}

func (s *authService) ListSessions(ctx context.Context, userID string) ([]model.Session, error) {
	return s.sessions.ListActiveForUser(ctx, userID)
}
