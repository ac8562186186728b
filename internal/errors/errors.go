package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when a request carries no valid session.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrForbidden is returned when the caller is not a member of the organization.
	ErrForbidden = errors.New("Forbidden")
	// ErrOwnerRequired is returned when a member without the owner role attempts an owner action.
	ErrOwnerRequired = errors.New("Forbidden: owner access required")
	// ErrInvitationNotForUser is returned when the invitation email differs from the caller's.
	ErrInvitationNotForUser = errors.New("This invitation is not for you")

	// ErrUserNotFound is returned when inviting an email that has no account.
	ErrUserNotFound = errors.New("User with this email does not exist")
	// ErrMemberNotFound is returned when a membership is absent from the organization.
	ErrMemberNotFound = errors.New("Member not found")
	// ErrInvitationNotFound is returned when no invitation carries the token.
	ErrInvitationNotFound = errors.New("Invitation not found")
	// ErrOutlineNotFound is returned when an outline is absent or belongs to another organization.
	ErrOutlineNotFound = errors.New("Outline not found")

	// ErrAlreadyMember is returned when inviting a user that already belongs to the organization.
	ErrAlreadyMember = errors.New("User is already a member of this organization")
	// ErrInvitationExists is returned when an invitation for the email and organization is pending.
	ErrInvitationExists = errors.New("Invitation already sent to this user")
	// ErrCannotRemoveOwner is returned when removing a member holding the owner role.
	ErrCannotRemoveOwner = errors.New("Cannot remove organization owner")
	// ErrInvitationExpired is returned when accepting an invitation past its expiry.
	ErrInvitationExpired = errors.New("Invitation has expired")
	// ErrUserAlreadyExists is returned when signing up with a registered email.
	ErrUserAlreadyExists = errors.New("User already exists")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a client-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// IsInternal reports whether the error maps to a 5xx response.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrOwnerRequired, http.StatusForbidden, "OWNER_REQUIRED"},
	{ErrInvitationNotForUser, http.StatusForbidden, "INVITATION_NOT_FOR_USER"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrMemberNotFound, http.StatusNotFound, "MEMBER_NOT_FOUND"},
	{ErrInvitationNotFound, http.StatusNotFound, "INVITATION_NOT_FOUND"},
	{ErrOutlineNotFound, http.StatusNotFound, "OUTLINE_NOT_FOUND"},
	{ErrAlreadyMember, http.StatusBadRequest, "ALREADY_MEMBER"},
	{ErrInvitationExists, http.StatusBadRequest, "INVITATION_EXISTS"},
	{ErrCannotRemoveOwner, http.StatusBadRequest, "CANNOT_REMOVE_OWNER"},
	{ErrInvitationExpired, http.StatusBadRequest, "INVITATION_EXPIRED"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 that never carries the underlying message.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
