package theme

import (
	"context"
	"errors"
)

// ErrNoProvider means a theme consumer ran outside a provider scope.
var ErrNoProvider = errors.New("theme: no provider in context; wrap the handler with the theme session middleware")

type providerKey struct{}

// WithProvider returns a copy of ctx carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider carried by ctx, or ErrNoProvider.
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	if !ok || p == nil {
		return nil, ErrNoProvider
	}
	return p, nil
}

// MustFromContext is FromContext for callers that cannot recover; it panics
// when no provider is present.
func MustFromContext(ctx context.Context) *Provider {
	p, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return p
}
