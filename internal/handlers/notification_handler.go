package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifier *services.Notifier
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifier *services.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, mw Guards) {
	g.GET("/notifications", h.GetNotifications, mw.Required)
	g.GET("/notifications/grouped", h.GetGroupedNotifications, mw.Required)
	g.GET("/notifications/unread-count", h.GetUnreadCount, mw.Required)
	g.PUT("/notifications/:id/read", h.MarkAsRead, mw.Required)
	g.PUT("/notifications/read-all", h.MarkAllAsRead, mw.Required)
	g.DELETE("/notifications/:id", h.DeleteNotification, mw.Required)
}

// GetNotifications returns paginated notifications, optionally filtered by
// type and read state
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, 20, maxPageSize)
	filter := models.NotificationFilter{Type: models.NotificationType(c.QueryParam("type"))}
	if raw := c.QueryParam("is_read"); raw != "" {
		read, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "is_read must be true or false")
		}
		filter.IsRead = &read
	}

	ctx := c.Request().Context()
	notifications, total, err := h.notifier.List(ctx, currentUserID, filter, page)
	if err != nil {
		return err
	}
	enriched, err := h.notifier.Enrich(ctx, notifications)
	if err != nil {
		return err
	}
	return paginated(c, "notifications", enriched, total, page)
}

// GetGroupedNotifications returns notifications grouped by time period
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	groups, err := h.notifier.Grouped(ctx, currentUserID)
	if err != nil {
		return err
	}
	enriched := make(map[string][]models.NotificationView, len(groups))
	for name, list := range groups {
		if enriched[name], err = h.notifier.Enrich(ctx, list); err != nil {
			return err
		}
	}
	unreadCount, err := h.notifier.UnreadCount(ctx, currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{
		"notifications": enriched,
		"unreadCount":   unreadCount,
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	count, err := h.notifier.UnreadCount(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	notifID, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}
	notification, err := h.notifier.MarkRead(c.Request().Context(), currentUserID, notifID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, notification)
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	updated, err := h.notifier.MarkAllRead(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"updated": updated})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	notifID, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}
	if err := h.notifier.Delete(c.Request().Context(), currentUserID, notifID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
