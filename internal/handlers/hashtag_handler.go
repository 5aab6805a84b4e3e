package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type HashtagHandler struct {
	content *services.ContentService
}

func NewHashtagHandler(content *services.ContentService) *HashtagHandler {
	return &HashtagHandler{content: content}
}

func (h *HashtagHandler) RegisterHashtagRoutes(g *echo.Group, mw Guards) {
	g.GET("/hashtags", h.ListHashtags, mw.Optional)
	g.GET("/hashtags/trending", h.Trending, mw.Optional)
	g.GET("/hashtags/:name/posts", h.Posts, mw.Optional)
}

func (h *HashtagHandler) ListHashtags(c echo.Context) error {
	page := pagination(c, 20, maxPageSize)
	tags, total, err := h.content.ListHashtags(c.Request().Context(), c.QueryParam("search"), page)
	if err != nil {
		return err
	}
	return paginated(c, "hashtags", tags, total, page)
}

// Trending lists hashtags used by at least three posts in the last week
func (h *HashtagHandler) Trending(c echo.Context) error {
	tags, err := h.content.TrendingHashtags(c.Request().Context())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"hashtags": tags})
}

func (h *HashtagHandler) Posts(c echo.Context) error {
	page := pagination(c, defaultPageSize, maxPageSize)
	posts, total, err := h.content.HashtagPosts(c.Request().Context(), optionalUserID(c), c.Param("name"), page)
	if err != nil {
		return err
	}
	return paginated(c, "posts", posts, total, page)
}
