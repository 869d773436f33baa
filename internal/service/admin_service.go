package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"gorm.io/gorm"
)

// Admin request actions.
const (
	AdminActionApprove = "approve"
	AdminActionReject  = "reject"
)

type ResolveAdminRequest struct {
	Action    string `json:"action" binding:"required"`
	AdminRole string `json:"admin_role"`
}

// AdminService owns the superadmin approval workflow over User.role:
// pending_admin -> admin (with an assigned admin role) or back to student.
type AdminService interface {
	ListPendingAdminRequests(ctx context.Context) ([]UserResponse, error)
	ListAdmins(ctx context.Context) ([]UserResponse, error)
	ResolveAdminRequest(ctx context.Context, userID string, req ResolveAdminRequest) (*UserResponse, error)
}

type adminService struct {
	users repository.UserRepository
}

func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

func (s *adminService) ListPendingAdminRequests(ctx context.Context) ([]UserResponse, error) {
	return s.listByRole(ctx, model.RolePendingAdmin)
}

func (s *adminService) ListAdmins(ctx context.Context) ([]UserResponse, error) {
	return s.listByRole(ctx, model.RoleAdmin)
}

func (s *adminService) listByRole(ctx context.Context, role string) ([]UserResponse, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserToResponse(&users[i]))
	}
	return responses, nil
}

func (s *adminService) ResolveAdminRequest(ctx context.Context, userID string, req ResolveAdminRequest) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	if user.Role != model.RolePendingAdmin {
		return nil, apperror.NotFound("User has no pending admin request")
	}

	switch req.Action {
	case AdminActionApprove:
		if req.AdminRole == "" {
			return nil, apperror.InvalidArgument("Admin role is required for approval")
		}
		user.Role = model.RoleAdmin
		user.AdminRole = req.AdminRole
	case AdminActionReject:
		user.Role = model.RoleStudent
		user.AdminRole = ""
	default:
		return nil, apperror.InvalidArgument("Invalid action")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}
