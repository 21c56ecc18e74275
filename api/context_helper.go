package api

import (
	"context"
	"time"
)

// QueryTimeout bounds every store call a handler or a single sweep entry
// makes. Shorter than the reconciliation sweep's own 5 minute budget so one
// stuck credit cannot eat the batch.
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives the bounded context used for store calls
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
