package cognito

import "errors"

// Sentinel errors for Cognito operations.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPoolNotFound     = errors.New("user pool not found")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorInfo maps a sentinel error to its HTTP status and error code.
type ErrorInfo struct {
	Status int
	Code   string
}

var errorMap = map[error]ErrorInfo{
	ErrUserNotFound:     {Status: 401, Code: "UNAUTHORIZED"},
	ErrPoolNotFound:     {Status: 500, Code: "INTERNAL_ERROR"},
	ErrTooManyRequests:  {Status: 429, Code: "TOO_MANY_REQUESTS"},
	ErrNotAuthorized:    {Status: 500, Code: "INTERNAL_ERROR"},
	ErrInvalidParameter: {Status: 401, Code: "UNAUTHORIZED"},
}

// LookupError checks if the given error matches any known Cognito sentinel error
// and returns the corresponding ErrorInfo. Returns false if no match.
func LookupError(err error) (ErrorInfo, bool) {
	for sentinel, info := range errorMap {
		if errors.Is(err, sentinel) {
			return info, true
		}
	}
	return ErrorInfo{}, false
}
