package impl

import (
	"strings"

	"pinboard/internal/usecase"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4

	msgInvalidEmail     = "invalid email"
	msgUsernameTooShort = "length must be greater than 2"
	msgUsernameHasAt    = "cannot include an @"
	msgPasswordTooShort = "length must be greater than 3"
)

// validateRegister checks the registration input and returns a result
// carrying the first rule violation, or nil when the input is acceptable.
// The rules run in a fixed order so callers always see the same error for
// the same input.
func validateRegister(input *usecase.RegisterInput) *usecase.AuthResult {
	if !strings.Contains(input.Email, "@") {
		return usecase.FieldErrorResult("email", msgInvalidEmail)
	}
	if len(input.Username) < minUsernameLen {
		return usecase.FieldErrorResult("username", msgUsernameTooShort)
	}
	if strings.Contains(input.Username, "@") {
		return usecase.FieldErrorResult("username", msgUsernameHasAt)
	}
	if len(input.Password) < minPasswordLen {
		return usecase.FieldErrorResult("password", msgPasswordTooShort)
	}

	return nil
}
