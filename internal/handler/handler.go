package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workspace/internal/auth"
	"workspace/internal/errors"
	"workspace/internal/model"
)

// invalidBody is returned when the request body cannot be decoded.
func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

// fail maps err to its HTTP error. Server-side failures are logged with the
// request id and never leak their cause to the client.
func fail(c echo.Context, logger *zap.Logger, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.IsInternal() {
		logger.Error("request failed",
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func currentIdentity(c echo.Context) (*model.Identity, error) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return nil, errors.ErrUnauthorized
	}
	return identity, nil
}

// orgIDParam parses the organization path parameter. A malformed id cannot
// name an organization the caller belongs to.
func orgIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("orgId"))
	if err != nil {
		return uuid.Nil, errors.ErrForbidden
	}
	return id, nil
}
