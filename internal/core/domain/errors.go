package domain

import "fmt"

// Error is a business error carried to the HTTP boundary as the
// {code, message} envelope. Codes follow the wire contract consumed
// by the frontend:
//
//	1000 — validation / duplicate registration
//	2000 — authentication failures
//	3000 — resource not found
//	 403 — ownership denied
//	5000 — internal (never constructed here; the error handler owns it)
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrEmailTaken         = &Error{Code: 1000, Message: "Email already registered"}
	ErrUsernameTaken      = &Error{Code: 1000, Message: "Username already taken"}
	ErrInvalidCredentials = &Error{Code: 2000, Message: "Invalid credentials"}
	ErrUnauthenticated    = &Error{Code: 2000, Message: "Not authenticated"}
	ErrUserNotFound       = &Error{Code: 2000, Message: "User not found"}
	ErrProjectNotFound    = &Error{Code: 3000, Message: "Project not found"}
	ErrIssueNotFound      = &Error{Code: 3000, Message: "Issue not found"}
)

// ErrForbidden builds the ownership-denial error for a specific mutation,
// e.g. ErrForbidden("update", "project") → "Not authorized to update this project".
func ErrForbidden(verb, resource string) *Error {
	return &Error{Code: 403, Message: fmt.Sprintf("Not authorized to %s this %s", verb, resource)}
}

// IsForbidden reports whether err is an ownership denial.
func IsForbidden(err error) bool {
	be, ok := err.(*Error)
	return ok && be.Code == 403
}
