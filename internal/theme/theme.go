// Package theme holds the dashboard colour-scheme preference.
//
// A Provider is created per client session, initialized once from the
// preference store and rewritten on every change. It travels in a
// context.Context; code that needs it asks FromContext and must treat a
// missing provider as a programming error.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/feeboard/internal/storage"
)

// Theme is a colour-scheme setting.
type Theme string

const (
	Dark   Theme = "dark"
	Light  Theme = "light"
	System Theme = "system"
)

// DefaultStorageKey is the key the preference is stored under.
const DefaultStorageKey = "theme"

var ErrInvalidTheme = errors.New("invalid theme")

// Parse accepts exactly "dark", "light" or "system".
func Parse(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Dark, Light, System:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
}

// Resolve maps System to Dark or Light from the client's colour-scheme
// preference. Dark and Light are returned unchanged.
func Resolve(t Theme, prefersDark bool) Theme {
	if t != System {
		return t
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Store is the persistence the provider needs. storage.PreferenceStore
// satisfies it.
type Store interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
}

// Options configures a Provider.
type Options struct {
	// StorageKey defaults to DefaultStorageKey.
	StorageKey string

	// Default is used when nothing valid is stored. Defaults to System.
	Default Theme
}

// Provider owns the theme of one client scope.
type Provider struct {
	store  Store
	scope  string
	key    string
	def    Theme
	logger logrus.FieldLogger

	mu    sync.RWMutex
	theme Theme
}

// NewProvider builds a provider holding the default theme. Call Init to
// load the stored preference.
func NewProvider(store Store, scope string, opts Options, logger logrus.FieldLogger) *Provider {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if _, err := Parse(string(opts.Default)); err != nil {
		opts.Default = System
	}
	return &Provider{
		store:  store,
		scope:  scope,
		key:    opts.StorageKey,
		def:    opts.Default,
		logger: logger,
		theme:  opts.Default,
	}
}

// Init reads the stored preference. A missing, unreadable or invalid value
// leaves the default in place.
func (p *Provider) Init(ctx context.Context) Theme {
	raw, err := p.store.Get(ctx, p.scope, p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.WithError(err).WithField("scope", p.scope).Warn("Failed to read theme preference")
		}
		return p.Theme()
	}

	stored, err := Parse(raw)
	if err != nil {
		p.logger.WithField("scope", p.scope).WithField("value", raw).Debug("Ignoring invalid stored theme")
		return p.Theme()
	}

	p.mu.Lock()
	p.theme = stored
	p.mu.Unlock()
	return stored
}

// Theme returns the current setting.
func (p *Provider) Theme() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Default returns the fallback setting.
func (p *Provider) Default() Theme {
	return p.def
}

// SetTheme changes the setting and persists it. The in-memory value
// changes even when the write fails; the write error is returned.
func (p *Provider) SetTheme(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}

	p.mu.Lock()
	p.theme = t
	p.mu.Unlock()

	if err := p.store.Set(ctx, p.scope, p.key, string(t)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}
