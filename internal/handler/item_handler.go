package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"backend/pkg/storage"
)

type ItemHandler struct {
	itemService   service.ItemService
	borrowService service.BorrowService
	photos        storage.PhotoStorage
	auth          *middleware.Auth
}

func NewItemHandler(itemService service.ItemService, borrowService service.BorrowService, photos storage.PhotoStorage, auth *middleware.Auth) *ItemHandler {
	return &ItemHandler{itemService: itemService, borrowService: borrowService, photos: photos, auth: auth}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/items")
	{
		items.GET("", h.auth.RequireAuth(), h.ListItems)
		items.GET("/search", h.auth.RequireAuth(), h.SearchItems)
		items.POST("", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.CreateItem)
		items.POST("/report", h.auth.RequireRole(model.RoleStudent), h.ReportItem)
		items.PUT("/:id", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.UpdateItem)
		items.PATCH("/:id/status", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.UpdateItemStatus)
		items.DELETE("/:id", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.DeleteItem)
		items.POST("/:id/borrow", h.auth.RequireRole(model.RoleStudent), h.BorrowItem)
	}
}

// ListItems returns the lendable inventory with derived availability
// @Summary      List items
// @Description  All inventory items with total_borrowed and available computed from approved/partial borrow requests
// @Tags         items
// @Security     BearerAuth
// @Produce      json
// @Param        sort  query     string  false  "Sort key: dateAdded, name or status"
// @Success      200   {object}  response.Response{data=[]service.ItemWithAvailability}
// @Failure      500   {object}  response.Response
// @Router       /api/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context(), c.DefaultQuery("sort", "dateAdded"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// SearchItems searches inventory by name or location
// @Summary      Search items
// @Tags         items
// @Security     BearerAuth
// @Produce      json
// @Param        q     query     string  false  "Search term matched against name and location"
// @Param        sort  query     string  false  "Sort key"
// @Success      200   {object}  response.Response{data=[]service.ItemWithAvailability}
// @Router       /api/items/search [get]
func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.itemService.SearchItems(c.Request.Context(), c.Query("q"), c.DefaultQuery("sort", "dateAdded"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// CreateItem registers a new inventory item
// @Summary      Create item
// @Description  Multipart create with an optional photo upload
// @Tags         items
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Item name"
// @Param        quantity  formData  int     false  "Quantity (default 1)"
// @Param        date      formData  string  true   "Date found/added (YYYY-MM-DD)"
// @Param        location  formData  string  true   "Location"
// @Param        description  formData  string  false  "Description"
// @Param        photo     formData  file    false  "Photo"
// @Success      201       {object}  response.Response{data=model.Item}
// @Failure      400       {object}  response.Response
// @Router       /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	req, err := h.bindItemForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), c.GetString(middleware.CtxUserID), *req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// ReportItem registers a found item reported by a student
// @Summary      Report found item
// @Description  Students hand in a found item; it enters the lending inventory like an admin-created one
// @Tags         items
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Item name"
// @Param        quantity  formData  int     false  "Quantity (default 1)"
// @Param        date      formData  string  true   "Date found (YYYY-MM-DD)"
// @Param        location  formData  string  true   "Location"
// @Param        photo     formData  file    false  "Photo"
// @Success      201       {object}  response.Response{data=model.Item}
// @Failure      400       {object}  response.Response
// @Router       /api/items/report [post]
func (h *ItemHandler) ReportItem(c *gin.Context) {
	req, err := h.bindItemForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	item, err := h.itemService.ReportFoundItem(c.Request.Context(), c.GetString(middleware.CtxUserID), *req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// UpdateItem updates an item's fields
// @Summary      Update item
// @Description  Multipart update; omitting photo or description keeps the current values
// @Tags         items
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	req, err := h.bindItemForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	update := service.UpdateItemRequest{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Date:        req.Date,
		Location:    req.Location,
		Photo:       req.Photo,
		Description: req.Description,
	}
	if err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Item updated successfully"))
}

// UpdateItemStatus sets an item's status
// @Summary      Update item status
// @Tags         items
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Router       /api/items/{id}/status [patch]
func (h *ItemHandler) UpdateItemStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.itemService.UpdateItemStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Status updated successfully"))
}

// DeleteItem removes an item without borrow history
// @Summary      Delete item
// @Tags         items
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Item deleted successfully"))
}

// BorrowItem files a borrow request against an item
// @Summary      Borrow item
// @Description  Creates a pending borrow request after checking derived availability
// @Tags         items
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Item ID"
// @Param        payload  body      service.CreateBorrowRequest  true  "Borrow Payload"
// @Success      201      {object}  response.Response{data=model.BorrowRequest}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/items/{id}/borrow [post]
func (h *ItemHandler) BorrowItem(c *gin.Context) {
	var req service.CreateBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	borrow, err := h.borrowService.CreateBorrowRequest(
		c.Request.Context(),
		c.Param("id"),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxStudentID),
		req,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, borrow))
}

// bindItemForm parses the shared multipart form used by create and update.
func (h *ItemHandler) bindItemForm(c *gin.Context) (*service.CreateItemRequest, error) {
	var form struct {
		Name        string `form:"name" binding:"required"`
		Quantity    int    `form:"quantity"`
		Date        string `form:"date" binding:"required"`
		Location    string `form:"location" binding:"required"`
		Description string `form:"description"`
	}
	if err := c.ShouldBind(&form); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", form.Date)
	if err != nil {
		return nil, err
	}

	req := &service.CreateItemRequest{
		Name:        form.Name,
		Quantity:    form.Quantity,
		Date:        date,
		Location:    form.Location,
		Description: form.Description,
	}
	if file, err := c.FormFile("photo"); err == nil {
		path, err := h.photos.Save(file)
		if err != nil {
			return nil, err
		}
		req.Photo = path
	}
	return req, nil
}
