package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth0ClientSignUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/dbconnections/signup", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-client", body["client_id"])
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, passwordRealmConnection, body["connection"])

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"_id": "auth0|123"})
	}))
	defer server.Close()

	client := NewAuth0Client("tenant.eu.auth0.com", "test-client", "test-secret")
	client.baseURL = server.URL

	err := client.SignUp(context.Background(), "alice@example.com", "s3cret!", "Alice")
	assert.NoError(t, err)
}

func TestAuth0ClientSignUpRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"code": "invalid_password"})
	}))
	defer server.Close()

	client := NewAuth0Client("tenant.eu.auth0.com", "test-client", "test-secret")
	client.baseURL = server.URL

	err := client.SignUp(context.Background(), "alice@example.com", "weak", "Alice")
	assert.Error(t, err)
}

func TestAuth0ClientSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "http://auth0.com/oauth/grant-type/password-realm", r.PostForm.Get("grant_type"))
		assert.Equal(t, "bob@example.com", r.PostForm.Get("username"))

		json.NewEncoder(w).Encode(map[string]string{
			"id_token":     "header.payload.signature",
			"access_token": "opaque",
		})
	}))
	defer server.Close()

	client := NewAuth0Client("tenant.eu.auth0.com", "test-client", "test-secret")
	client.baseURL = server.URL

	token, err := client.SignIn(context.Background(), "bob@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "header.payload.signature", token)
}

func TestAuth0ClientSignInInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	}))
	defer server.Close()

	client := NewAuth0Client("tenant.eu.auth0.com", "test-client", "test-secret")
	client.baseURL = server.URL

	_, err := client.SignIn(context.Background(), "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
