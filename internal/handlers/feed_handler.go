package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, mw Guards) {
	g.GET("/feed", h.GetFeed, mw.Required)
	g.GET("/feed/ranked", h.GetRankedFeed, mw.Required)
	g.GET("/feed/trending", h.GetTrending, mw.Optional)
	g.GET("/feed/stats", h.GetStats, mw.Required)
	g.GET("/feed/interests", h.GetInterests, mw.Required)
	g.GET("/feed/preferences", h.GetPreferences, mw.Required)
	g.PUT("/feed/preferences", h.UpdatePreferences, mw.Required)
	g.POST("/feed/preferences/mute/users/:id", h.MuteUser, mw.Required)
	g.DELETE("/feed/preferences/mute/users/:id", h.UnmuteUser, mw.Required)
	g.POST("/feed/preferences/mute/hashtags/:name", h.MuteHashtag, mw.Required)
	g.DELETE("/feed/preferences/mute/hashtags/:name", h.UnmuteHashtag, mw.Required)
}

// GetFeed returns the chronological feed with the caller's preferences applied
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	query := models.PostQuery{
		Search:   c.QueryParam("search"),
		PostType: models.PostType(c.QueryParam("post_type")),
		Hashtag:  c.QueryParam("hashtag"),
		Ordering: c.QueryParam("ordering"),
	}
	posts, total, err := h.feed.Feed(c.Request().Context(), currentUserID, query, page)
	if err != nil {
		return err
	}
	return paginated(c, "posts", posts, total, page)
}

// GetRankedFeed returns recent posts ordered by the caller's scoring weights
func (h *FeedHandler) GetRankedFeed(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	posts, total, err := h.feed.RankedFeed(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "posts", posts, total, page)
}

func (h *FeedHandler) GetTrending(c echo.Context) error {
	posts, err := h.feed.Trending(c.Request().Context(), optionalUserID(c))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"posts": posts})
}

func (h *FeedHandler) GetStats(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	stats, err := h.feed.Stats(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, stats)
}

func (h *FeedHandler) GetInterests(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	interests, err := h.feed.Interests(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"hashtags": interests})
}

func (h *FeedHandler) GetPreferences(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	pref, err := h.feed.Preferences(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, pref)
}

// UpdatePreferences rejects weights that do not sum to about 1.0
func (h *FeedHandler) UpdatePreferences(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateFeedPreferencesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	pref, err := h.feed.UpdatePreferences(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, pref)
}

func (h *FeedHandler) MuteUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	created, err := h.feed.MuteUser(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"muted": true, "created": created})
}

func (h *FeedHandler) UnmuteUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	removed, err := h.feed.UnmuteUser(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"muted": false, "removed": removed})
}

func (h *FeedHandler) MuteHashtag(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	created, err := h.feed.MuteHashtag(c.Request().Context(), currentUserID, c.Param("name"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"muted": true, "created": created})
}

func (h *FeedHandler) UnmuteHashtag(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	removed, err := h.feed.UnmuteHashtag(c.Request().Context(), currentUserID, c.Param("name"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"muted": false, "removed": removed})
}
