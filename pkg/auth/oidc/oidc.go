package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adrianliechti/speechbridge/pkg/auth"

	"github.com/coreos/go-oidc/v3/oidc"
)

type Provider struct {
	verifier *oidc.IDTokenVerifier
}

type Option func(*config)

type config struct {
	client *http.Client
}

// WithClient sets the HTTP client used for discovery and key retrieval.
func WithClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// New discovers the issuer and returns a provider that accepts ID tokens
// issued for audience. An empty audience skips the client id check.
func New(ctx context.Context, issuer, audience string, opts ...Option) (*Provider, error) {
	if issuer == "" {
		return nil, errors.New("oidc issuer is required")
	}

	c := &config{}

	for _, opt := range opts {
		opt(c)
	}

	if c.client != nil {
		ctx = oidc.ClientContext(ctx, c.client)
	}

	provider, err := oidc.NewProvider(ctx, issuer)

	if err != nil {
		return nil, fmt.Errorf("oidc discovery failed: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: audience,

		SkipClientIDCheck: audience == "",
	})

	return &Provider{
		verifier: verifier,
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	token, err := auth.BearerToken(r)

	if err != nil {
		return ctx, err
	}

	idtoken, err := p.verifier.Verify(ctx, token)

	if err != nil {
		return ctx, err
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
	}

	if err := idtoken.Claims(&claims); err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, auth.UserContextKey, claims.Subject)

	if claims.Email != "" {
		ctx = context.WithValue(ctx, auth.EmailContextKey, claims.Email)
	}

	return ctx, nil
}
