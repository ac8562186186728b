package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/internal/service"
)

// InvitationHandler handles the caller's pending invitations.
type InvitationHandler struct {
	invitationService service.InvitationService
	logger            *zap.Logger
}

// NewInvitationHandler creates a new invitation handler.
func NewInvitationHandler(invitationService service.InvitationService, logger *zap.Logger) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		logger:            logger,
	}
}

// List godoc
// @Summary List pending invitations
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /invitations [get]
func (h *InvitationHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	invitations, err := h.invitationService.List(c.Request().Context(), identity.User)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"invitations": invitations})
}

// Accept godoc
// @Summary Accept an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /invitations/{token}/accept [post]
func (h *InvitationHandler) Accept(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	result, err := h.invitationService.Accept(c.Request().Context(), identity.User, c.Param("token"))
	if err != nil {
		return fail(c, h.logger, err)
	}

	message := "Invitation accepted successfully"
	if result.AlreadyMember {
		message = "You are already a member of this organization"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      message,
		"organization": result.Organization,
	})
}

// Reject godoc
// @Summary Reject an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /invitations/{token}/reject [post]
func (h *InvitationHandler) Reject(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.invitationService.Reject(c.Request().Context(), identity.User, c.Param("token")); err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Invitation rejected successfully"})
}
