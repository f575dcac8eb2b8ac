package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned when the identity provider rejects a sign-in
var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentityClient talks to the external identity provider for account
// creation and credential-based sign-in. Token validation lives in the
// verifier, not here.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password, name string) error
	SignIn(ctx context.Context, email, password string) (string, error)
}

// Auth0Client implements IdentityClient against an Auth0 tenant using its
// database-connection signup endpoint and the password-realm token grant.
type Auth0Client struct {
	domain       string
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

const passwordRealmConnection = "Username-Password-Authentication"

// NewAuth0Client creates a client for the given Auth0 tenant
func NewAuth0Client(domain, clientID, clientSecret string) *Auth0Client {
	return &Auth0Client{
		domain:       domain,
		baseURL:      fmt.Sprintf("https://%s", domain),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SignUp registers the user with the identity provider's database connection
func (c *Auth0Client) SignUp(ctx context.Context, email, password, name string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"client_id":  c.clientID,
		"email":      email,
		"password":   password,
		"connection": passwordRealmConnection,
		"user_metadata": map[string]string{
			"firstName": name,
		},
	})
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/dbconnections/signup"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider signup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		log.WithFields(log.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("Identity provider rejected signup")
		return fmt.Errorf("identity provider signup failed with status %d", resp.StatusCode)
	}
	return nil
}

// SignIn exchanges the user's credentials for an ID token using the
// password-realm grant. Returns the raw ID token on success.
func (c *Auth0Client) SignIn(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "http://auth0.com/oauth/grant-type/password-realm")
	form.Set("realm", passwordRealmConnection)
	form.Set("username", email)
	form.Set("password", password)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("scope", "openid profile email")
	form.Set("audience", fmt.Sprintf("https://%s/api/v2/", c.domain))

	endpoint := c.baseURL + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidCredentials
	}

	var tokenResponse struct {
		IDToken string `json:"id_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResponse.IDToken == "" {
		return "", ErrInvalidCredentials
	}
	return tokenResponse.IDToken, nil
}
