// Package session binds a browser session id to an authenticated
// identifier. Only the identifier is stored; the principal is rebuilt
// from the user record on every request.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, identifier string, ttl time.Duration) (string, error)
	Get(ctx context.Context, id string) (string, error)
	// Touch restarts the inactivity window of a live session.
	Touch(ctx context.Context, id string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
