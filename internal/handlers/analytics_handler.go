package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	defaultActivityLimit = 50
	defaultSummaryDays   = 30
)

// AnalyticsHandler exposes the caller's own activity history
type AnalyticsHandler struct {
	activity *services.ActivityLog
}

func NewAnalyticsHandler(activity *services.ActivityLog) *AnalyticsHandler {
	return &AnalyticsHandler{activity: activity}
}

func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group, mw Guards) {
	g.GET("/analytics/activity", h.RecentActivity, mw.Required)
	g.GET("/analytics/summary", h.ActivitySummary, mw.Required)
}

func (h *AnalyticsHandler) RecentActivity(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	limit := int64(queryUint(c, "limit"))
	if limit == 0 || limit > 200 {
		limit = defaultActivityLimit
	}
	items, err := h.activity.Recent(c.Request().Context(), currentUserID, limit)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"activities": items, "enabled": h.activity.Enabled()})
}

// ActivitySummary counts activity per type over the last ?days (default 30)
func (h *AnalyticsHandler) ActivitySummary(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	days := defaultSummaryDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a number")
		}
	}
	counts, err := h.activity.Summary(c.Request().Context(), currentUserID, days)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"days": days, "summary": counts, "enabled": h.activity.Enabled()})
}
