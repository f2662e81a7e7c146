// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrForbidden          = errors.New("operation not permitted for this user")
	ErrInvalidState       = errors.New("project is not accepting this operation")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrDuplicateEntry     = errors.New("duplicate entry") // Email or wallet address already registered
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
