package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Verification failure classes surfaced to the middleware
var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the subset of the identity provider's claim set the API uses
type Claims struct {
	Subject string
	Email   string
}

// TokenVerifier validates bearer tokens against the identity provider's
// published signing keys.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// OIDCVerifier verifies tokens through OIDC discovery: the provider's JWKS
// endpoint is resolved from the issuer URL and keys are fetched and cached
// by the underlying library.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the identity provider at the given domain and
// builds a verifier bound to the expected client ID audience.
func NewOIDCVerifier(ctx context.Context, domain, clientID string) (*OIDCVerifier, error) {
	issuer := fmt.Sprintf("https://%s/", domain)
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover identity provider %s: %w", issuer, err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var extra struct {
		Email string `json:"email"`
	}
	// Email is optional on access tokens; ignore decode failures
	_ = idToken.Claims(&extra)

	return &Claims{
		Subject: idToken.Subject,
		Email:   extra.Email,
	}, nil
}
