// Package session keeps track of revoked access tokens.
//
// Tokens are stateless JWTs, so logging out means remembering the token id (jti)
// until the token would have expired anyway.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyTokenID = errors.New("session: empty token id")

type Store interface {
	// Revoke marks tokenID as unusable until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}
