package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content    *services.ContentService
	engagement *services.EngagementService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService, engagement *services.EngagementService) *PostHandler {
	return &PostHandler{content: content, engagement: engagement}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, mw Guards) {
	g.GET("/posts", h.GetPosts, mw.Optional)
	g.POST("/posts", h.CreatePost, mw.Required)
	g.GET("/posts/:id", h.GetPost, mw.Optional)
	g.PUT("/posts/:id", h.UpdatePost, mw.Required)
	g.DELETE("/posts/:id", h.DeletePost, mw.Required)
	g.PUT("/posts/:id/approval", h.ModeratePost, mw.Required)
	g.POST("/posts/:id/view", h.RecordView, mw.Optional)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.content.CreatePost(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, post)
}

// GetPost retrieves a post the caller can see
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	post, err := h.content.GetPost(c.Request().Context(), optionalUserID(c), postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, post)
}

// GetPosts lists visible posts with search, author, type and hashtag filters
func (h *PostHandler) GetPosts(c echo.Context) error {
	page := pagination(c, defaultPageSize, maxPageSize)
	query := models.PostQuery{
		Search:   c.QueryParam("search"),
		AuthorID: queryUint(c, "author"),
		PostType: models.PostType(c.QueryParam("post_type")),
		Hashtag:  c.QueryParam("hashtag"),
		Ordering: c.QueryParam("ordering"),
	}
	posts, total, err := h.content.ListPosts(c.Request().Context(), optionalUserID(c), query, page)
	if err != nil {
		return err
	}
	return paginated(c, "posts", posts, total, page)
}

// UpdatePost edits the caller's own post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.content.UpdatePost(c.Request().Context(), currentUserID, postID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, post)
}

// ModeratePost approves or withholds a post; staff only
func (h *PostHandler) ModeratePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.ModeratePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	post, err := h.content.ModeratePost(c.Request().Context(), currentUserID, postID, *req.Approved)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, post)
}

// DeletePost deletes a post; staff may delete any post
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.content.DeletePost(c.Request().Context(), currentUserID, postID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordView counts a view once per viewer within the view window
func (h *PostHandler) RecordView(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	outcome, err := h.engagement.RecordView(c.Request().Context(), viewerFromContext(c), postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}
