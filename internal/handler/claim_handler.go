package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"
	"backend/pkg/storage"
)

type ClaimHandler struct {
	claimService service.ClaimService
	photos       storage.PhotoStorage
	auth         *middleware.Auth
}

func NewClaimHandler(claimService service.ClaimService, photos storage.PhotoStorage, auth *middleware.Auth) *ClaimHandler {
	return &ClaimHandler{claimService: claimService, photos: photos, auth: auth}
}

func (h *ClaimHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.POST("/reported-items", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.ReportLostItem)
		api.GET("/reported-items", h.auth.RequireAuth(), h.ListReportedItems)

		api.POST("/claim-requests", h.auth.RequireRole(model.RoleStudent), h.SubmitClaim)
		api.GET("/claim-requests", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.ListClaimRequests)
		api.PATCH("/claim-requests/:id", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.ResolveClaim)
		api.DELETE("/claim-requests/:id", h.auth.RequireAuth(), h.CancelClaim)
	}
}

// ReportLostItem logs a found item for potential claiming
// @Summary      Report lost item
// @Tags         claims
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Item name"
// @Param        date      formData  string  true   "Date found (YYYY-MM-DD)"
// @Param        location  formData  string  true   "Location"
// @Param        description  formData  string  false  "Description"
// @Param        photo     formData  file    false  "Photo"
// @Success      201       {object}  response.Response{data=model.ReportedItem}
// @Failure      400       {object}  response.Response
// @Router       /api/reported-items [post]
func (h *ClaimHandler) ReportLostItem(c *gin.Context) {
	var form struct {
		Name        string `form:"name" binding:"required"`
		Date        string `form:"date" binding:"required"`
		Location    string `form:"location" binding:"required"`
		Description string `form:"description"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	date, err := time.Parse("2006-01-02", form.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD"))
		return
	}

	req := service.ReportLostItemRequest{
		Name:        form.Name,
		Date:        date,
		Location:    form.Location,
		Description: form.Description,
	}
	if file, err := c.FormFile("photo"); err == nil {
		path, err := h.photos.Save(file)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Photo = path
	}

	item, err := h.claimService.ReportLostItem(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// ListReportedItems lists/searches reported lost items
// @Summary      List reported items
// @Tags         claims
// @Security     BearerAuth
// @Produce      json
// @Param        q      query     string  false  "Search term matched against name and location"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/reported-items [get]
func (h *ClaimHandler) ListReportedItems(c *gin.Context) {
	params := pagination.Parse(c)
	items, total, err := h.claimService.ListReportedItems(c.Request.Context(), c.Query("q"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// SubmitClaim files an ownership claim with mandatory proof photo
// @Summary      Submit claim
// @Description  One pending claim per user per item; the proof photo is required
// @Tags         claims
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        item_id      formData  string  true   "Reported item ID"
// @Param        claim_notes  formData  string  false  "Supporting notes"
// @Param        photo        formData  file    true   "Proof of ownership"
// @Success      201          {object}  response.Response{data=model.ClaimRequest}
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /api/claim-requests [post]
func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	var form struct {
		ItemID     string `form:"item_id" binding:"required"`
		ClaimNotes string `form:"claim_notes"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	req := service.SubmitClaimRequest{ItemID: form.ItemID, ClaimNotes: form.ClaimNotes}
	if file, err := c.FormFile("photo"); err == nil {
		path, err := h.photos.Save(file)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Photo = path
	}

	claim, err := h.claimService.SubmitClaim(
		c.Request.Context(),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUsername),
		c.GetString(middleware.CtxStudentID),
		req,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, claim))
}

// ListClaimRequests lists claims for admin review
// @Summary      List claim requests
// @Tags         claims
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status: pending, approved or rejected"
// @Success      200     {object}  response.Response{data=[]repository.ClaimDetail}
// @Router       /api/claim-requests [get]
func (h *ClaimHandler) ListClaimRequests(c *gin.Context) {
	claims, err := h.claimService.ListClaimRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, claims))
}

// ResolveClaim approves or rejects a pending claim
// @Summary      Resolve claim
// @Description  Approval also marks the reported item claimed; both writes share one transaction
// @Tags         claims
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "Claim request ID"
// @Success      200      {object}  response.Response{data=model.ClaimRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/claim-requests/{id} [patch]
func (h *ClaimHandler) ResolveClaim(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	claim, err := h.claimService.ResolveClaim(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, claim))
}

// CancelClaim lets a claimant withdraw a pending claim
// @Summary      Cancel claim
// @Tags         claims
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Claim request ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/claim-requests/{id} [delete]
func (h *ClaimHandler) CancelClaim(c *gin.Context) {
	if err := h.claimService.CancelClaim(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Claim cancelled"))
}
