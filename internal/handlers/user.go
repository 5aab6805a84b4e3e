package handlers

import (
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to members and their profiles
type UserHandler struct {
	accounts *services.AccountService
	profiles *services.ProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accounts *services.AccountService, profiles *services.ProfileService) *UserHandler {
	return &UserHandler{accounts: accounts, profiles: profiles}
}

// RegisterProfileRoutes registers member profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, mw Guards) {
	g.GET("/users/me", h.GetMe, mw.Required)
	g.PUT("/users/me", h.UpdateMe, mw.Required)
	g.POST("/users/me/password", h.ChangePassword, mw.Required)
	g.GET("/users", h.ListUsers, mw.Required)
	g.GET("/users/search", h.SearchUsers, mw.Required)
	g.GET("/users/:id", h.GetUser, mw.Required)
	g.GET("/users/:id/profile", h.GetProfile, mw.Required)

	g.GET("/users/me/experiences", h.ListExperiences, mw.Required)
	g.POST("/users/me/experiences", h.AddExperience, mw.Required)
	g.PUT("/users/me/experiences/:id", h.UpdateExperience, mw.Required)
	g.DELETE("/users/me/experiences/:id", h.DeleteExperience, mw.Required)

	g.GET("/users/me/education", h.ListEducation, mw.Required)
	g.POST("/users/me/education", h.AddEducation, mw.Required)
	g.PUT("/users/me/education/:id", h.UpdateEducation, mw.Required)
	g.DELETE("/users/me/education/:id", h.DeleteEducation, mw.Required)

	g.GET("/users/me/skills", h.ListSkills, mw.Required)
	g.POST("/users/me/skills", h.AddSkill, mw.Required)
	g.DELETE("/users/me/skills/:id", h.RemoveSkill, mw.Required)
	g.POST("/users/:id/skills/:skillId/endorse", h.Endorse, mw.Required)
}

// GetMe retrieves the authenticated member
func (h *UserHandler) GetMe(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.Me(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, user)
}

// UpdateMe updates the fields present in the body
func (h *UserHandler) UpdateMe(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.UpdateProfile(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.accounts.ChangePassword(c.Request().Context(), currentUserID, req); err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

// ListUsers pages through public profiles other than the caller's
func (h *UserHandler) ListUsers(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	page := pagination(c, defaultPageSize, maxPageSize)
	users, total, err := h.accounts.ListUsers(c.Request().Context(), currentUserID, page)
	if err != nil {
		return err
	}
	return paginated(c, "users", users, total, page)
}

// SearchUsers searches members by name, headline or company
func (h *UserHandler) SearchUsers(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	users, err := h.accounts.Search(c.Request().Context(), currentUserID, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"users": users})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	user, err := h.accounts.GetUser(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, user)
}

// GetProfile returns the member with experience, education and skills
func (h *UserHandler) GetProfile(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	profile, err := h.profiles.Profile(c.Request().Context(), currentUserID, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, profile)
}

func (h *UserHandler) ListExperiences(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.Profile(c.Request().Context(), currentUserID, currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"experiences": profile.Experiences})
}

func (h *UserHandler) AddExperience(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.ExperienceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	exp, err := h.profiles.AddExperience(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, exp)
}

func (h *UserHandler) UpdateExperience(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "experience")
	if err != nil {
		return err
	}
	var req models.ExperienceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	exp, err := h.profiles.UpdateExperience(c.Request().Context(), currentUserID, id, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, exp)
}

func (h *UserHandler) DeleteExperience(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "experience")
	if err != nil {
		return err
	}
	if err := h.profiles.DeleteExperience(c.Request().Context(), currentUserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListEducation(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.Profile(c.Request().Context(), currentUserID, currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"education": profile.Education})
}

func (h *UserHandler) AddEducation(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.EducationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	edu, err := h.profiles.AddEducation(c.Request().Context(), currentUserID, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, edu)
}

func (h *UserHandler) UpdateEducation(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "education")
	if err != nil {
		return err
	}
	var req models.EducationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	edu, err := h.profiles.UpdateEducation(c.Request().Context(), currentUserID, id, req)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, edu)
}

func (h *UserHandler) DeleteEducation(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "education")
	if err != nil {
		return err
	}
	if err := h.profiles.DeleteEducation(c.Request().Context(), currentUserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListSkills(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.Profile(c.Request().Context(), currentUserID, currentUserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"skills": profile.Skills})
}

// AddSkill answers 201 for a new skill and 200 when it was already listed
func (h *UserHandler) AddSkill(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.AddSkillRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	skill, created, err := h.profiles.AddSkill(c.Request().Context(), currentUserID, req.Name)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return success(c, status, skill)
}

func (h *UserHandler) RemoveSkill(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "skill")
	if err != nil {
		return err
	}
	if err := h.profiles.RemoveSkill(c.Request().Context(), currentUserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) Endorse(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	owner, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	skillID, err := parseID(c, "skillId", "skill")
	if err != nil {
		return err
	}
	outcome, skill, err := h.profiles.Endorse(c.Request().Context(), currentUserID, owner, skillID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, echo.Map{"status": outcome, "skill": skill})
}
