package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow and block requests
type FollowHandler struct {
	connections *services.ConnectionService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(connections *services.ConnectionService) *FollowHandler {
	return &FollowHandler{connections: connections}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, mw Guards) {
	g.POST("/users/:id/follow", h.FollowUser, mw.Required)
	g.DELETE("/users/:id/follow", h.UnfollowUser, mw.Required)
	g.GET("/users/:id/followers", h.GetFollowers, mw.Required)
	g.GET("/users/:id/following", h.GetFollowing, mw.Required)
	g.POST("/users/:id/block", h.BlockUser, mw.Required)
	g.DELETE("/users/:id/block", h.UnblockUser, mw.Required)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	outcome, err := h.connections.Follow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome, "following": true})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	outcome, err := h.connections.Unfollow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome, "following": false})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	userID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	page := pagination(c, defaultConnectionPageSize, maxConnectionPageSize)
	users, total, err := h.connections.Followers(c.Request().Context(), userID, page)
	if err != nil {
		return err
	}
	return paginated(c, "users", users, total, page)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}
	userID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	page := pagination(c, defaultConnectionPageSize, maxConnectionPageSize)
	users, total, err := h.connections.Following(c.Request().Context(), userID, page)
	if err != nil {
		return err
	}
	return paginated(c, "users", users, total, page)
}

// BlockUser also removes any connection, request and follow between the two
func (h *FollowHandler) BlockUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	created, err := h.connections.Block(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"blocked": true, "created": created})
}

func (h *FollowHandler) UnblockUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	removed, err := h.connections.Unblock(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "User is not blocked")
	}
	return success(c, http.StatusOK, echo.Map{"blocked": false})
}
