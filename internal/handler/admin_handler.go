package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
)

type AdminHandler struct {
	adminService service.AdminService
	auth         *middleware.Auth
}

func NewAdminHandler(adminService service.AdminService, auth *middleware.Auth) *AdminHandler {
	return &AdminHandler{adminService: adminService, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api", h.auth.RequireRole(model.RoleSuperadmin))
	{
		api.GET("/admin-requests", h.ListAdminRequests)
		api.PATCH("/admin-requests/:id", h.ResolveAdminRequest)
		api.GET("/admins/all", h.ListAdmins)
	}
}

// ListAdminRequests lists users awaiting admin approval
// @Summary      List admin requests
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.UserResponse}
// @Router       /api/admin-requests [get]
func (h *AdminHandler) ListAdminRequests(c *gin.Context) {
	users, err := h.adminService.ListPendingAdminRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, users))
}

// ResolveAdminRequest approves or rejects a pending admin
// @Summary      Resolve admin request
// @Description  approve promotes to admin with the given admin_role; reject demotes back to student
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "User ID"
// @Param        payload  body      service.ResolveAdminRequest  true  "Decision Payload"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/admin-requests/{id} [patch]
func (h *AdminHandler) ResolveAdminRequest(c *gin.Context) {
	var req service.ResolveAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.adminService.ResolveAdminRequest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// ListAdmins lists all current admins
// @Summary      List admins
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.UserResponse}
// @Router       /api/admins/all [get]
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, admins))
}
