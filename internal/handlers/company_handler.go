package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CompanyHandler handles company pages and follows
type CompanyHandler struct {
	companies *services.CompanyService
}

func NewCompanyHandler(companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// RegisterCompanyRoutes registers company routes
func (h *CompanyHandler) RegisterCompanyRoutes(g *echo.Group, mw Guards) {
	g.GET("/companies", h.ListCompanies, mw.Optional)
	g.POST("/companies", h.CreateCompany, mw.Required)
	g.GET("/companies/followed", h.FollowedCompanies, mw.Required)
	g.GET("/companies/:id", h.GetCompany, mw.Optional)
	g.PUT("/companies/:id", h.UpdateCompany, mw.Required)
	g.POST("/companies/:id/follow", h.FollowCompany, mw.Required)
	g.DELETE("/companies/:id/follow", h.UnfollowCompany, mw.Required)
	g.GET("/companies/:id/stats", h.CompanyStats, mw.Optional)
}

func (h *CompanyHandler) ListCompanies(c echo.Context) error {
	page := pagination(c, defaultPageSize, maxPageSize)
	companies, total, err := h.companies.List(c.Request().Context(), c.QueryParam("search"), c.QueryParam("industry"), page)
	if err != nil {
		return err
	}
	return paginated(c, "companies", companies, total, page)
}

func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.CompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	company, err := h.companies.Create(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, company)
}

func (h *CompanyHandler) GetCompany(c echo.Context) error {
	id, err := parseID(c, "id", "company")
	if err != nil {
		return err
	}
	company, err := h.companies.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, company)
}

// UpdateCompany is limited to the member who created the page
func (h *CompanyHandler) UpdateCompany(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "company")
	if err != nil {
		return err
	}
	var req models.CompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	company, err := h.companies.Update(c.Request().Context(), currentUserID, id, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, company)
}

func (h *CompanyHandler) FollowCompany(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "company")
	if err != nil {
		return err
	}
	outcome, err := h.companies.Follow(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

func (h *CompanyHandler) UnfollowCompany(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "company")
	if err != nil {
		return err
	}
	outcome, err := h.companies.Unfollow(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome})
}

func (h *CompanyHandler) FollowedCompanies(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	companies, total, err := h.companies.Followed(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "companies", companies, total, page)
}

func (h *CompanyHandler) CompanyStats(c echo.Context) error {
	id, err := parseID(c, "id", "company")
	if err != nil {
		return err
	}
	stats, err := h.companies.Stats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, stats)
}
