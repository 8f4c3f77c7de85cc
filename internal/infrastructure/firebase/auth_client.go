package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/Aryanbansal-05/Relayy-backend/pkg/errors"
)

// AuthClient is the identity gate: it turns a bearer credential into a user
// id. Both the REST middleware and the WebSocket handshake go through it, so
// the two surfaces cannot diverge on what counts as authenticated.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

// VerifyToken validates an ID token and returns the authenticated user id.
// A missing, malformed, or unknown credential is always UNAUTHORIZED; there
// is no partially-authenticated state.
func (a *AuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.Unauthorized("Authentication credential is required", nil)
	}

	decoded, err := a.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	return decoded.UID, nil
}
