package oidc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/speechbridge/pkg/auth/oidc"

	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T) *httptest.Server {
	var srv *httptest.Server

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/.well-known/openid-configuration":
			json.NewEncoder(w).Encode(map[string]any{
				"issuer":                 srv.URL,
				"jwks_uri":               srv.URL + "/keys",
				"authorization_endpoint": srv.URL + "/authorize",
				"token_endpoint":         srv.URL + "/token",

				"id_token_signing_alg_values_supported": []string{"RS256"},
			})

		case "/keys":
			json.NewEncoder(w).Encode(map[string]any{"keys": []any{}})

		default:
			http.NotFound(w, r)
		}
	}))

	t.Cleanup(srv.Close)

	return srv
}

func TestNew(t *testing.T) {
	srv := newIssuer(t)

	p, err := oidc.New(context.Background(), srv.URL, "bridge", oidc.WithClient(srv.Client()))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/tts_synthesize", nil)

	_, err = p.Authenticate(context.Background(), r)
	require.EqualError(t, err, "missing authorization header")

	r.Header.Set("Authorization", "Bearer garbage")

	_, err = p.Authenticate(context.Background(), r)
	require.Error(t, err)
}

func TestNewMissingIssuer(t *testing.T) {
	_, err := oidc.New(context.Background(), "", "bridge")
	require.EqualError(t, err, "oidc issuer is required")
}

func TestNewDiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := oidc.New(context.Background(), srv.URL, "bridge")
	require.ErrorContains(t, err, "oidc discovery failed: ")
}
