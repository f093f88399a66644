package middleware

import "errors"

var (
	ErrRateLimitExceeded = errors.New("middleware: rate limit exceeded")
	ErrBodyTooLarge      = errors.New("middleware: request body too large")
)
