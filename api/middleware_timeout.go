package api

import (
	"net/http"
	"time"
)

// TimeoutMiddleware bounds request handling time. The wrapped handler runs
// against a buffered response and a context that expires at the deadline, so
// a handler that outlives the timeout is released instead of pinned, and its
// late writes never reach a response the timeout already answered.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, `{"error": "request timed out"}`)
	}
}
