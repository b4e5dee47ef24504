// Package drafts stores in-progress form answers so visitors can resume a
// consultation across visits.
package drafts

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no draft exists for the session and form.
var ErrNotFound = errors.New("draft not found")

// Store persists raw draft payloads keyed by session and form name.
type Store interface {
	Get(ctx context.Context, sessionID, form string) ([]byte, error)
	Put(ctx context.Context, sessionID, form string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, sessionID, form string) error
}
