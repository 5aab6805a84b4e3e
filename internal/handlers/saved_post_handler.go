package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles bookmarking posts
type SavedPostHandler struct {
	engagement *services.EngagementService
	feed       *services.FeedService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(engagement *services.EngagementService, feed *services.FeedService) *SavedPostHandler {
	return &SavedPostHandler{engagement: engagement, feed: feed}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group, mw Guards) {
	g.POST("/posts/:id/save", h.SavePost, mw.Required)
	g.DELETE("/posts/:id/save", h.UnsavePost, mw.Required)
	g.GET("/feed/saved", h.GetSavedPosts, mw.Required)
}

// SavePost bookmarks a post; saving twice reports already_saved
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	outcome, err := h.engagement.Save(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

// UnsavePost removes a bookmark
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	outcome, err := h.engagement.Unsave(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

// GetSavedPosts lists the caller's bookmarks, newest save first
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	posts, total, err := h.feed.Saved(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "posts", posts, total, page)
}
