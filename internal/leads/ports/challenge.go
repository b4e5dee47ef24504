// Package ports declares the interfaces the leads module needs from other
// bounded contexts, keeping the dependency direction inward.
package ports

import "context"

// ChallengeVerifier checks a client-supplied bot-challenge token with the
// external verification service. A nil error means the token was accepted.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}
