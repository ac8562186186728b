package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/internal/model"
	"workspace/internal/service"
)

// OrganizationHandler handles organization and member endpoints.
type OrganizationHandler struct {
	organizationService service.OrganizationService
	logger              *zap.Logger
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(organizationService service.OrganizationService, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
		logger:              logger,
	}
}

// CreateOrganizationRequest represents an organization creation request.
type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// InviteMemberRequest represents an invitation request.
type InviteMemberRequest struct {
	Email string `json:"email" validate:"required"`
}

// UserSummary is the public part of a user.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// MemberResponse represents an organization member.
type MemberResponse struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	UserID         uuid.UUID   `json:"userId"`
	Role           model.Role  `json:"role"`
	CreatedAt      time.Time   `json:"createdAt"`
	User           UserSummary `json:"user"`
}

// InvitationSummary is the owner's view of a sent invitation. The token is
// only ever shown to the invitee.
type InvitationSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func newMemberResponse(m model.OrganizationMember) MemberResponse {
	resp := MemberResponse{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
	}
	if m.User != nil {
		resp.User = UserSummary{ID: m.User.ID, Email: m.User.Email, Name: m.User.Name}
	}
	return resp
}

// Create godoc
// @Summary Create an organization
// @Description The caller becomes its owner.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrganizationRequest true "Organization data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization [post]
func (h *OrganizationHandler) Create(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	var req CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, err)
	}

	org, err := h.organizationService.Create(c.Request().Context(), identity.User.ID, req.Name, req.Slug)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"organization": org})
}

// List godoc
// @Summary List the caller's organizations
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization [get]
func (h *OrganizationHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	orgs, err := h.organizationService.ListForUser(c.Request().Context(), identity.User.ID)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"organizations": orgs})
}

// ListMembers godoc
// @Summary List organization members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/members [get]
func (h *OrganizationHandler) ListMembers(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	members, err := h.organizationService.ListMembers(c.Request().Context(), identity.User.ID, orgID)
	if err != nil {
		return fail(c, h.logger, err)
	}

	resp := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, newMemberResponse(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"members": resp})
}

// InviteMember godoc
// @Summary Invite a registered user
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Param request body InviteMemberRequest true "Invitee"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/members [post]
func (h *OrganizationHandler) InviteMember(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	var req InviteMemberRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, err)
	}

	invitation, err := h.organizationService.InviteMember(c.Request().Context(), identity.User.ID, orgID, req.Email)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Invitation sent successfully",
		"invitation": InvitationSummary{ID: invitation.ID, Email: invitation.Email},
	})
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param orgId path string true "Organization ID"
// @Param memberId query string true "Membership ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /organization/{orgId}/members [delete]
func (h *OrganizationHandler) RemoveMember(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	orgID, err := orgIDParam(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.organizationService.RemoveMember(c.Request().Context(), identity.User.ID, orgID, c.QueryParam("memberId")); err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
