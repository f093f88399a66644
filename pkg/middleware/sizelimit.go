package middleware

import "net/http"

// MaxGraphSubmissionBytes bounds a single POST /graph or /upload-nodes
// request body (spec.md §5's resource limits apply to submitted graphs,
// not just to running nodes).
const MaxGraphSubmissionBytes = 10 * 1024 * 1024

// SizeLimit wraps next, rejecting request bodies larger than maxBytes
// with 413 Payload Too Large.
func SizeLimit(maxBytes int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		next.ServeHTTP(w, r)
	})
}
