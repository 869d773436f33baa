package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"backend/pkg/storage"
)

type PostHandler struct {
	postService service.PostService
	photos      storage.PhotoStorage
	auth        *middleware.Auth
}

func NewPostHandler(postService service.PostService, photos storage.PhotoStorage, auth *middleware.Auth) *PostHandler {
	return &PostHandler{postService: postService, photos: photos, auth: auth}
}

func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/api/admin-posts")
	{
		posts.POST("", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.CreatePost)
		posts.GET("", h.auth.RequireAuth(), h.ListPosts)
		posts.POST("/:id/replies", h.auth.RequireAuth(), h.AddReply)
		posts.DELETE("/:id", h.auth.RequireRole(model.RoleAdmin, model.RoleSuperadmin), h.DeletePost)
		posts.DELETE("/:id/replies/:replyId", h.auth.RequireAuth(), h.DeleteReply)
	}
}

// CreatePost publishes an announcement
// @Summary      Create announcement
// @Tags         posts
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  true   "Content"
// @Param        photo    formData  file    false  "Photo"
// @Success      201      {object}  response.Response{data=model.AdminPost}
// @Failure      400      {object}  response.Response
// @Router       /api/admin-posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var form struct {
		Title   string `form:"title" binding:"required"`
		Content string `form:"content" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	req := service.CreatePostRequest{Title: form.Title, Content: form.Content}
	if file, err := c.FormFile("photo"); err == nil {
		path, err := h.photos.Save(file)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Photo = path
	}

	post, err := h.postService.CreatePost(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, post))
}

// ListPosts returns announcements with authors and replies
// @Summary      List announcements
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.AdminPost}
// @Router       /api/admin-posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, posts))
}

// AddReply adds a reply under an announcement
// @Summary      Reply to announcement
// @Tags         posts
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path      string  true   "Post ID"
// @Param        content  formData  string  true   "Content"
// @Param        photo    formData  file    false  "Photo"
// @Success      201      {object}  response.Response{data=model.AdminPostReply}
// @Failure      404      {object}  response.Response
// @Router       /api/admin-posts/{id}/replies [post]
func (h *PostHandler) AddReply(c *gin.Context) {
	var form struct {
		Content string `form:"content" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	req := service.CreateReplyRequest{Content: form.Content}
	if file, err := c.FormFile("photo"); err == nil {
		path, err := h.photos.Save(file)
		if err != nil {
			respondError(c, err)
			return
		}
		req.Photo = path
	}

	reply, err := h.postService.AddReply(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, reply))
}

// DeletePost removes an announcement and its replies
// @Summary      Delete announcement
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admin-posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	err := h.postService.DeletePost(
		c.Request.Context(),
		c.Param("id"),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Post deleted successfully"))
}

// DeleteReply removes a single reply
// @Summary      Delete reply
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Param        id       path  string  true  "Post ID"
// @Param        replyId  path  string  true  "Reply ID"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/admin-posts/{id}/replies/{replyId} [delete]
func (h *PostHandler) DeleteReply(c *gin.Context) {
	err := h.postService.DeleteReply(
		c.Request.Context(),
		c.Param("replyId"),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Reply deleted successfully"))
}
