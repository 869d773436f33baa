package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
)

type ExportHandler struct {
	exportService service.ExportService
	auth          *middleware.Auth
}

func NewExportHandler(exportService service.ExportService, auth *middleware.Auth) *ExportHandler {
	return &ExportHandler{exportService: exportService, auth: auth}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/admin", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin))
	{
		admin.GET("/export", h.ExportInventory)
		admin.GET("/export-lending", h.ExportLendingInventory)
	}
}

// ExportInventory downloads the inventory as CSV
// @Summary      Export inventory
// @Tags         export
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string  "CSV file"
// @Router       /api/admin/export [get]
func (h *ExportHandler) ExportInventory(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.ExportInventory(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="inventory.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportLendingInventory downloads inventory with lending figures as CSV
// @Summary      Export lending inventory
// @Tags         export
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string  "CSV file"
// @Router       /api/admin/export-lending [get]
func (h *ExportHandler) ExportLendingInventory(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.ExportLendingInventory(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="lending_inventory.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
