package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"not a member", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"owner required", ErrOwnerRequired, http.StatusForbidden, "OWNER_REQUIRED"},
		{"wrapped not found", fmt.Errorf("find outline: %w", ErrOutlineNotFound), http.StatusNotFound, "OUTLINE_NOT_FOUND"},
		{"cannot remove owner", ErrCannotRemoveOwner, http.StatusBadRequest, "CANNOT_REMOVE_OWNER"},
		{"expired invitation", ErrInvitationExpired, http.StatusBadRequest, "INVITATION_EXPIRED"},
		{"user exists", ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{"validation", NewValidationError("Invalid ids"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("Error 1062: duplicate entry for key users.email"))

	assert.True(t, httpErr.IsInternal())
	assert.Equal(t, "internal server error", httpErr.ToErrorResponse().Error)
}

func TestMapErrorToHTTP_ValidationMessage(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("bind: %w", NewValidationError("Email is required")))

	assert.Equal(t, "Email is required", httpErr.Message)
}
