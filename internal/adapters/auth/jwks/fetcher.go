package jwks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coffee-shop/internal/platform/httpclient"
	"coffee-shop/internal/ports/auth"
)

// FetcherConfig del fetcher de JWKS.
type FetcherConfig struct {
	// Domain del issuer, p.ej. "fsnd.au.auth0.com".
	Domain string

	// URL opcional; si viene, reemplaza https://{Domain}/.well-known/jwks.json
	// (IdP local, tests).
	URL string

	Timeout time.Duration
}

// Fetcher implementa auth.KeySetFetcher. No cachea: cada llamada va a la red.
type Fetcher struct {
	url    string
	client *httpclient.Client
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = KeySetURL(cfg.Domain)
	}
	return &Fetcher{
		url:    url,
		client: httpclient.New(cfg.Timeout),
	}
}

// KeySetURL arma la URL well-known del JWKS para un dominio.
func KeySetURL(domain string) string {
	return "https://" + strings.TrimSpace(domain) + "/.well-known/jwks.json"
}

func (f *Fetcher) URL() string { return f.url }

func (f *Fetcher) FetchKeySet(ctx context.Context) (auth.KeySet, error) {
	var ks auth.KeySet
	if err := f.client.GetJSON(ctx, f.url, &ks); err != nil {
		return auth.KeySet{}, fmt.Errorf("%w: %v", auth.ErrKeySetFetch, err)
	}
	return ks, nil
}

var _ auth.KeySetFetcher = (*Fetcher)(nil)
