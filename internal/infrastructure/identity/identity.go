// Package identity verifies bearer tokens issued by the identity provider.
package identity

import (
	"context"
	"errors"
)

// ErrNoEmail is returned for otherwise valid tokens that carry no email claim.
var ErrNoEmail = errors.New("identity: token has no email claim")

type Identity struct {
	UID   string
	Email string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
