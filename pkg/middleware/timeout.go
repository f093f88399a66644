package middleware

import (
	"net/http"
	"time"
)

// Timeout wraps next with http.TimeoutHandler, returning 503 once the
// handler exceeds d. Request-scoped work (e.g. POST /run starting a
// scheduler.Executor) still runs to completion in its own goroutine;
// this only bounds how long the HTTP response waits.
func Timeout(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.TimeoutHandler(next, d, "request timed out")
}
