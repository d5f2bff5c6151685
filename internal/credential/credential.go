// Package credential models the two ways a request to the search service
// can authenticate: a static admin key or a delegated identity token.
// The variant is resolved once at client construction and is opaque to the
// rest of the code beyond decorating outgoing requests.
package credential

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// TokenEnvVar is the environment variable the ambient token provider reads.
const TokenEnvVar = "SEARCH_ACCESS_TOKEN"

// ErrNoCredential is returned when neither a key nor a token source is available.
var ErrNoCredential = errors.New("credential: no api key and no token source configured")

// TokenProvider supplies a bearer token for delegated-identity authentication.
type TokenProvider func(ctx context.Context) (string, error)

// Credential decorates an outgoing request with authentication material.
type Credential interface {
	Apply(req *http.Request) error
}

// Key authenticates with a static admin key via the api-key header.
type Key struct {
	key string
}

// NewKey creates a key credential.
func NewKey(key string) *Key {
	return &Key{key: key}
}

// Apply sets the api-key header.
func (k *Key) Apply(req *http.Request) error {
	req.Header.Set("api-key", k.key)
	return nil
}

// Token authenticates with a bearer token obtained from a provider.
type Token struct {
	provider TokenProvider
}

// NewToken creates a token credential.
func NewToken(provider TokenProvider) *Token {
	return &Token{provider: provider}
}

// Apply fetches a token and sets the Authorization header.
func (t *Token) Apply(req *http.Request) error {
	tok, err := t.provider(req.Context())
	if err != nil {
		return fmt.Errorf("fetch token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	return nil
}

// Resolve picks the credential variant: static key if present, otherwise the
// given token provider, otherwise the ambient environment token.
func Resolve(apiKey string, provider TokenProvider) (Credential, error) {
	if apiKey != "" {
		return NewKey(apiKey), nil
	}
	if provider != nil {
		return NewToken(provider), nil
	}
	if tok := strings.TrimSpace(os.Getenv(TokenEnvVar)); tok != "" {
		return NewToken(EnvTokenProvider()), nil
	}
	return nil, ErrNoCredential
}

// EnvTokenProvider returns a provider that reads the token from SEARCH_ACCESS_TOKEN
// on every call, so a rotated token is picked up without restarting.
func EnvTokenProvider() TokenProvider {
	return func(_ context.Context) (string, error) {
		tok := strings.TrimSpace(os.Getenv(TokenEnvVar))
		if tok == "" {
			return "", fmt.Errorf("environment variable %s is empty", TokenEnvVar)
		}
		return tok, nil
	}
}
