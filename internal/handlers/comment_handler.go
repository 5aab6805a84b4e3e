package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, mw Guards) {
	g.GET("/posts/:id/comments", h.GetCommentsByPostID, mw.Optional)
	g.POST("/posts/:id/comments", h.CreateComment, mw.Required)
	g.DELETE("/comments/:id", h.DeleteComment, mw.Required)
}

// CreateComment adds a comment or, with parent_id, a reply
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.content.CreateComment(c.Request().Context(), currentUserID, postID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, comment)
}

// GetCommentsByPostID pages through top-level comments with their replies
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	threads, total, err := h.content.ListComments(c.Request().Context(), optionalUserID(c), postID, page)
	if err != nil {
		return err
	}
	return paginated(c, "comments", threads, total, page)
}

// DeleteComment removes a comment with its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}
	if err := h.content.DeleteComment(c.Request().Context(), currentUserID, commentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
