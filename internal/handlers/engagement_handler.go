package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// EngagementHandler handles reactions, shares, reports and comment likes
type EngagementHandler struct {
	engagement *services.EngagementService
}

func NewEngagementHandler(engagement *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// RegisterEngagementRoutes registers engagement routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group, mw Guards) {
	g.POST("/posts/:id/react", h.React, mw.Required)
	g.GET("/posts/:id/reactions", h.ListReactions, mw.Optional)
	g.POST("/posts/:id/share", h.Share, mw.Required)
	g.POST("/posts/:id/report", h.ReportPost, mw.Required)
	g.POST("/comments/:id/like", h.LikeComment, mw.Required)
	g.DELETE("/comments/:id/like", h.UnlikeComment, mw.Required)
	g.POST("/comments/:id/report", h.ReportComment, mw.Required)
}

// React toggles or switches the caller's reaction on a post
func (h *EngagementHandler) React(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.ReactRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.engagement.React(c.Request().Context(), currentUserID, postID, models.ReactionKind(req.ReactionType))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, result)
}

// ListReactions pages through a post's reactions with a breakdown by kind
func (h *EngagementHandler) ListReactions(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	result, total, err := h.engagement.Reactions(c.Request().Context(), optionalUserID(c), postID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    result,
		"meta":    pageMeta(page, total),
	})
}

func (h *EngagementHandler) Share(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.ShareRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	outcome, share, err := h.engagement.Share(c.Request().Context(), currentUserID, postID, req.ShareContent)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if outcome == models.OutcomeShared {
		status = http.StatusCreated
	}
	return success(c, status, echo.Map{"status": outcome, "share": share})
}

func (h *EngagementHandler) ReportPost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.ReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	outcome, err := h.engagement.ReportPost(c.Request().Context(), currentUserID, postID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

func (h *EngagementHandler) ReportComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}
	var req models.ReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	outcome, err := h.engagement.ReportComment(c.Request().Context(), currentUserID, commentID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

func (h *EngagementHandler) LikeComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}
	outcome, count, err := h.engagement.LikeComment(c.Request().Context(), currentUserID, commentID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome, "likes_count": count})
}

func (h *EngagementHandler) UnlikeComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return err
	}
	outcome, count, err := h.engagement.UnlikeComment(c.Request().Context(), currentUserID, commentID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome, "likes_count": count})
}
