package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/internal/auth"
	"workspace/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	signer      *auth.CookieSigner
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, signer *auth.CookieSigner, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		signer:      signer,
		logger:      logger,
	}
}

// SignUpRequest represents a sign-up request.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

// SignInRequest represents a sign-in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUp godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, err)
	}

	user, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": user,
	})
}

// SignIn godoc
// @Summary Sign in with email and password
// @Description Returns the session token and sets it as a signed cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} model.Identity
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, err)
	}

	identity, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, h.logger, err)
	}

	cookie, err := h.signer.Cookie(identity.Session.Token, identity.Session.ExpiresAt)
	if err != nil {
		return fail(c, h.logger, err)
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, identity)
}

// SignOut godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.authService.SignOut(c.Request().Context(), identity.Session.Token); err != nil {
		return fail(c, h.logger, err)
	}
	c.SetCookie(h.signer.ClearCookie())

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Identity
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, identity)
}
