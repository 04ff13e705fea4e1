package interfaces

import (
	"context"
	"errors"
	"time"

	"estimate_service/internal/domain/entities"
)

//go:generate mockgen -source=session_store_interface.go -destination=mocks/session_store_mock.go -package=mock_interfaces

var ErrSessionNotFound = errors.New("session not found or expired")

// ISessionStore resolves bearer tokens to the authenticated principal.
type ISessionStore interface {
	Save(ctx context.Context, token string, principal entities.Principal, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (entities.Principal, error)
}
