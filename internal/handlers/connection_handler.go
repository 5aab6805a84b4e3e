package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const (
	defaultConnectionPageSize = 20
	maxConnectionPageSize     = 100
)

// ConnectionHandler handles connection requests and the connection list
type ConnectionHandler struct {
	connections *services.ConnectionService
}

func NewConnectionHandler(connections *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// RegisterConnectionRoutes registers connection routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group, mw Guards) {
	g.POST("/connections/requests", h.SendRequest, mw.Required)
	g.GET("/connections/requests/received", h.ReceivedRequests, mw.Required)
	g.GET("/connections/requests/sent", h.SentRequests, mw.Required)
	g.PUT("/connections/requests/:id/accept", h.AcceptRequest, mw.Required)
	g.PUT("/connections/requests/:id/decline", h.DeclineRequest, mw.Required)
	g.DELETE("/connections/requests/:id", h.WithdrawRequest, mw.Required)
	g.GET("/connections", h.GetConnections, mw.Required)
	g.DELETE("/connections/:id", h.RemoveConnection, mw.Required)
	g.GET("/connections/status/:userId", h.Status, mw.Required)
	g.GET("/connections/mutual/:userId", h.Mutual, mw.Required)
	g.GET("/connections/recommendations", h.Recommendations, mw.Required)
}

// SendRequest asks another member to connect
func (h *ConnectionHandler) SendRequest(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.SendConnectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	request, err := h.connections.SendRequest(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, request)
}

func (h *ConnectionHandler) listRequests(c echo.Context, incoming bool) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultConnectionPageSize, maxConnectionPageSize)
	requests, total, err := h.connections.ListRequests(c.Request().Context(), currentUserID, incoming, page)
	if err != nil {
		return err
	}
	return paginated(c, "requests", requests, total, page)
}

// ReceivedRequests lists pending requests addressed to the caller
func (h *ConnectionHandler) ReceivedRequests(c echo.Context) error {
	return h.listRequests(c, true)
}

// SentRequests lists the caller's own pending requests
func (h *ConnectionHandler) SentRequests(c echo.Context) error {
	return h.listRequests(c, false)
}

func (h *ConnectionHandler) respond(c echo.Context, accept bool) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	requestID, err := parseID(c, "id", "request")
	if err != nil {
		return err
	}
	request, conn, err := h.connections.Respond(c.Request().Context(), currentUserID, requestID, accept)
	if err != nil {
		return err
	}
	data := echo.Map{"request": request}
	if conn != nil {
		data["connection"] = conn
	}
	return success(c, http.StatusOK, data)
}

// AcceptRequest accepts a pending request and creates the connection
func (h *ConnectionHandler) AcceptRequest(c echo.Context) error {
	return h.respond(c, true)
}

func (h *ConnectionHandler) DeclineRequest(c echo.Context) error {
	return h.respond(c, false)
}

// WithdrawRequest cancels a pending request the caller sent
func (h *ConnectionHandler) WithdrawRequest(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	requestID, err := parseID(c, "id", "request")
	if err != nil {
		return err
	}
	if err := h.connections.Withdraw(c.Request().Context(), currentUserID, requestID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetConnections lists the caller's connections
func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultConnectionPageSize, maxConnectionPageSize)
	conns, total, err := h.connections.ListConnections(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "connections", conns, total, page)
}

// RemoveConnection deletes a connection the caller is part of
func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	connID, err := parseID(c, "id", "connection")
	if err != nil {
		return err
	}
	if err := h.connections.RemoveConnection(c.Request().Context(), currentUserID, connID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ConnectionHandler) Status(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	other, err := parseID(c, "userId", "user")
	if err != nil {
		return err
	}
	status, err := h.connections.Status(c.Request().Context(), currentUserID, other)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, status)
}

func (h *ConnectionHandler) Mutual(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	other, err := parseID(c, "userId", "user")
	if err != nil {
		return err
	}
	users, err := h.connections.MutualConnections(c.Request().Context(), currentUserID, other)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// Recommendations suggests members ranked by mutual connections
func (h *ConnectionHandler) Recommendations(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	limit := int(queryUint(c, "limit"))
	if limit > maxPageSize {
		limit = maxPageSize
	}
	recs, err := h.connections.Recommendations(c.Request().Context(), currentUserID, limit)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"recommendations": recs})
}
