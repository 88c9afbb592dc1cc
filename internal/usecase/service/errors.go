package service

import "fmt"

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func WrapError(domainError *DomainError, err error) error {
	return &DomainError{
		Code:    domainError.Code,
		Message: domainError.Message,
		Err:     err,
	}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

var (
	// UNAUTHORIZED
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "Please login to use the service",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "invalid email or password",
	}

	// FORBIDDEN
	ErrNoPasswordSet = &DomainError{
		Code:    "FORBIDDEN",
		Message: "Password change is not available for OAuth-only users",
	}

	// NOT_FOUND
	ErrUserNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "User not found",
	}
	ErrIssueNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "Issue not found",
	}

	// CONFLICT
	ErrEmailExists = &DomainError{
		Code:    "CONFLICT",
		Message: "User already exists",
	}

	// INVALID_INPUT
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
	ErrMissingFields = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "Missing required fields",
	}
	ErrInvalidName = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "Name must be between 1 and 50 characters",
	}
	ErrInvalidNewPassword = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "New password must be between 6 and 100 characters",
	}
	ErrWrongPassword = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "Current password is incorrect",
	}

	// UPSTREAM_ERROR
	ErrSummaryNotConfigured = &DomainError{
		Code:    "UPSTREAM_ERROR",
		Message: "OpenAI API key not configured",
	}
	ErrSummaryFailed = &DomainError{
		Code:    "UPSTREAM_ERROR",
		Message: "Failed to generate summary from AI service",
	}
	ErrOAuthFailed = &DomainError{
		Code:    "UPSTREAM_ERROR",
		Message: "OAuth sign-in failed",
	}
)
