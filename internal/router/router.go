package router

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"workspace/internal/auth"
	"workspace/internal/config"
	"workspace/internal/errors"
	"workspace/internal/handler"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth         *handler.AuthHandler
	Organization *handler.OrganizationHandler
	Outline      *handler.OutlineHandler
	Invitation   *handler.InvitationHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	resolver auth.SessionResolver,
	signer *auth.CookieSigner,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= http.StatusInternalServerError {
				logger.Warn("request", fields...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
		}))
	}

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.Auth.SignUp)
	api.POST("/auth/signin", h.Auth.SignIn)

	// Session routes
	secured := api.Group("",
		auth.VerifyCookie(signer),
		auth.RequireSession(resolver, logger),
	)

	secured.POST("/auth/signout", h.Auth.SignOut)
	secured.GET("/auth/session", h.Auth.Session)

	secured.POST("/organization", h.Organization.Create)
	secured.GET("/organization", h.Organization.List)

	secured.GET("/organization/:orgId/members", h.Organization.ListMembers)
	secured.POST("/organization/:orgId/members", h.Organization.InviteMember)
	secured.DELETE("/organization/:orgId/members", h.Organization.RemoveMember)

	secured.GET("/organization/:orgId/outline", h.Outline.List)
	secured.POST("/organization/:orgId/outline", h.Outline.Create)
	secured.PUT("/organization/:orgId/outline/reorder", h.Outline.Reorder)
	secured.PATCH("/organization/:orgId/outline/:id", h.Outline.Update)
	secured.DELETE("/organization/:orgId/outline/:id", h.Outline.Delete)

	secured.GET("/invitations", h.Invitation.List)
	secured.POST("/invitations/:token/accept", h.Invitation.Accept)
	secured.POST("/invitations/:token/reject", h.Invitation.Reject)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures are returned as
// *errors.ValidationError describing the first offending field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return errors.NewValidationError(err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errors.NewValidationError(fmt.Sprintf("%s is required", fe.Field()))
	case "oneof":
		return errors.NewValidationError(fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
	case "min":
		return errors.NewValidationError(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	default:
		return errors.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
