package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
)

type ActivityHandler struct {
	activityService service.ActivityService
	auth            *middleware.Auth
}

func NewActivityHandler(activityService service.ActivityService, auth *middleware.Auth) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, auth: auth}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/logs", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.GetLogs)
}

// GetLogs returns the merged recent activity feed
// @Summary      Activity logs
// @Description  Recent borrow transitions, inventory additions and lost-item reports merged newest first
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ActivityEntry}
// @Router       /api/logs [get]
func (h *ActivityHandler) GetLogs(c *gin.Context) {
	entries, err := h.activityService.RecentActivity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
