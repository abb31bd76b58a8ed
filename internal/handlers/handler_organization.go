package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/dto"
	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to accounting organizations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{organizationService: os}
}

// registerOrganizationRoutes registers the organization routes and returns
// the /organizations/:orgID group for nested resources.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) *gin.RouterGroup {
	h := newOrganizationHandler(organizationService)

	orgs := rg.Group("/organizations")
	orgs.POST("", h.createOrganization)

	org := orgs.Group("/:orgID")
	org.GET("", h.getOrganization)
	org.PATCH("", h.updateOrganization)
	return org
}

// createOrganization godoc
// @Summary Create an accounting organization
// @Description Creates the accounting organization of a location. A location has at most one active organization.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} domain.AccountingOrganization
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Location already has an active organization"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.AccountingOrganizationID))
	c.JSON(http.StatusCreated, org)
}

// getOrganization godoc
// @Summary Get an accounting organization
// @Tags organizations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {object} domain.AccountingOrganization
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to retrieve organization"
// @Security BearerAuth
// @Router /organizations/{orgID} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c, logger); !ok {
		return
	}

	org, err := h.organizationService.GetOrganization(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, org)
}

// updateOrganization godoc
// @Summary Update an accounting organization
// @Description Changes designated ledger accounts, the lock day or the active flag. Omitted fields are unchanged.
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   organization body dto.UpdateOrganizationRequest true "Fields to change"
// @Success 200 {object} domain.AccountingOrganization
// @Failure 400 {object} map[string]string "Invalid input or account of another organization"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Organization or account not found"
// @Failure 500 {object} map[string]string "Failed to update organization"
// @Security BearerAuth
// @Router /organizations/{orgID} [patch]
func (h *organizationHandler) updateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	orgID := c.Param("orgID")
	org, err := h.organizationService.UpdateOrganization(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update organization")
		return
	}

	logger.Info("Organization updated", slog.String("organization_id", orgID))
	c.JSON(http.StatusOK, org)
}
