package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/linkedin-clone/backend/internal/middleware"
	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// Guards are the auth middlewares routes opt into.
type Guards struct {
	Required echo.MiddlewareFunc
	Optional echo.MiddlewareFunc
}

func claimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(middleware.ClaimsKey).(*models.JwtCustomClaims)
	return claims
}

// getUserIDFromContext returns the authenticated member or 0.
func getUserIDFromContext(c echo.Context) uint {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// optionalUserID is nil for anonymous requests.
func optionalUserID(c echo.Context) *uint {
	if id := getUserIDFromContext(c); id != 0 {
		return &id
	}
	return nil
}

// clientIP prefers the first X-Forwarded-For entry.
func clientIP(c echo.Context) string {
	if fwd := c.Request().Header.Get(echo.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.RealIP()
}

func viewerFromContext(c echo.Context) models.Viewer {
	return models.Viewer{
		UserID:    optionalUserID(c),
		IP:        clientIP(c),
		UserAgent: c.Request().UserAgent(),
	}
}

func parseID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+label+" ID")
	}
	return uint(id), nil
}

func queryUint(c echo.Context, name string) uint {
	v, _ := strconv.ParseUint(c.QueryParam(name), 10, 32)
	return uint(v)
}

// pagination reads page and limit, falling back to def when limit is
// missing or outside 1..max.
func pagination(c echo.Context, def, max int) repositories.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > max {
		limit = def
	}
	return repositories.Page{Number: page, Limit: limit}
}

func pageMeta(page repositories.Page, total int64) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(page.Limit)))
	return echo.Map{
		"currentPage":     page.Number,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    page.Limit,
		"hasNextPage":     page.Number < totalPages,
		"hasPreviousPage": page.Number > 1,
	}
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func paginated(c echo.Context, key string, items interface{}, total int64, page repositories.Page) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{key: items},
		"meta":    pageMeta(page, total),
	})
}

// bind decodes the body and runs the registered validator.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

func requireUser(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}
