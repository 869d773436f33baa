package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
)

type BorrowHandler struct {
	borrowService service.BorrowService
	auth          *middleware.Auth
}

func NewBorrowHandler(borrowService service.BorrowService, auth *middleware.Auth) *BorrowHandler {
	return &BorrowHandler{borrowService: borrowService, auth: auth}
}

func (h *BorrowHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/borrow-requests", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.ListBorrowRequests)
		api.GET("/my-borrow-requests", h.auth.RequireAuth(), h.ListMyBorrowRequests)
		api.PATCH("/borrow-requests/:id", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.UpdateBorrowRequest)
	}
}

// ListBorrowRequests lists all borrow requests for admins
// @Summary      List borrow requests
// @Description  All borrow requests joined with requester username, email and item name
// @Tags         borrow
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]repository.BorrowRequestDetail}
// @Router       /api/borrow-requests [get]
func (h *BorrowHandler) ListBorrowRequests(c *gin.Context) {
	requests, err := h.borrowService.ListBorrowRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// ListMyBorrowRequests lists the caller's borrow requests
// @Summary      My borrow requests
// @Tags         borrow
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]repository.BorrowRequestDetail}
// @Router       /api/my-borrow-requests [get]
func (h *BorrowHandler) ListMyBorrowRequests(c *gin.Context) {
	requests, err := h.borrowService.ListUserBorrowRequests(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// UpdateBorrowRequest transitions a borrow request's status
// @Summary      Update borrow request
// @Description  approved/rejected from pending; returned (full or partial) from approved/partial, which frees stock and notifies the borrower
// @Tags         borrow
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Borrow request ID"
// @Param        payload  body      service.UpdateBorrowStatusRequest  true  "Status Payload"
// @Success      200      {object}  response.Response{data=model.BorrowRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/borrow-requests/{id} [patch]
func (h *BorrowHandler) UpdateBorrowRequest(c *gin.Context) {
	var req service.UpdateBorrowStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	borrow, err := h.borrowService.UpdateBorrowRequestStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, borrow))
}
