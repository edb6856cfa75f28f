package jwks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop/internal/adapters/auth/jwks/jwkstest"
	"coffee-shop/internal/platform/httpclient"
	"coffee-shop/internal/ports/auth"
)

func TestFetchKeySet_DecodesRecords(t *testing.T) {
	iss := jwkstest.NewIssuer(t)
	f := NewFetcher(FetcherConfig{URL: iss.JWKSURL()})

	ks, err := f.FetchKeySet(context.Background())
	require.NoError(t, err)
	require.Len(t, ks.Keys, 1)

	k := ks.Keys[0]
	assert.Equal(t, jwkstest.DefaultKid, k.Kid)
	assert.Equal(t, "RSA", k.Kty)
	assert.Equal(t, "sig", k.Use)
	assert.NotEmpty(t, k.N)
	assert.Equal(t, "AQAB", k.E)
}

func TestFetchKeySet_NonOKWrapsSentinel(t *testing.T) {
	iss := jwkstest.NewIssuer(t)
	f := NewFetcher(FetcherConfig{URL: iss.JWKSURL() + "/missing"})

	_, err := f.FetchKeySet(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrKeySetFetch))
}

func TestNewFetcher_DefaultsToWellKnown(t *testing.T) {
	f := NewFetcher(FetcherConfig{Domain: "fsnd.au.auth0.com"})
	assert.Equal(t, "https://fsnd.au.auth0.com/.well-known/jwks.json", f.URL())
	assert.Equal(t, httpclient.DefaultTimeout, f.client.HTTP.Timeout)
}
