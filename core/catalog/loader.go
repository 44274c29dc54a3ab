package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loader is the front door of the catalog: cached lookups with redirection
// handling on top of a Store. All methods are safe for concurrent use.
type Loader struct {
	store     *Store
	locations *LocationResolver
	redirects *RedirectTable
	logger    *zap.Logger

	// loadTimeout is copied onto the store at the end of New so that
	// option order does not matter.
	loadTimeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocations replaces the default location resolver.
func WithLocations(r *LocationResolver) Option {
	return func(l *Loader) {
		if r != nil {
			l.locations = r
		}
	}
}

// WithRedirects installs a redirection table. Without it every miss is a
// plain not-found.
func WithRedirects(t *RedirectTable) Option {
	return func(l *Loader) {
		if t != nil {
			l.redirects = t
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithLoadTimeout bounds each backend load. Zero disables the bound.
func WithLoadTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.loadTimeout = d
	}
}

// New builds a Loader over the given backend. Defaults: built-in locations,
// no redirections, no-op logger, DefaultLoadTimeout.
func New(backend Backend, opts ...Option) *Loader {
	l := &Loader{
		locations:   NewLocationResolver(DefaultLocations(), DefaultAncestorRules()),
		redirects:   emptyRedirectTable(),
		logger:      zap.NewNop(),
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.store = NewStore(backend, l.locations, l.logger)
	l.store.loadTimeout = l.loadTimeout
	return l
}

// Get returns the record of type t named name, following redirections when
// the name itself is absent.
//
// Misses resolve in this order: a replace redirection retries against the
// replacement and memoizes the alias on success; an ignore redirection and
// a dangling replacement return a NotFoundError; an undecided entry returns
// a PendingRedirectionError; no entry returns a plain NotFoundError.
func (l *Loader) Get(ctx context.Context, t TemplateType, name string) (Record, error) {
	rec, found, err := l.store.Get(ctx, t, name)
	if err != nil {
		return Record{}, err
	}
	if found {
		return rec, nil
	}

	loc := l.locations.Resolve(t)
	res := l.redirects.Resolve(loc.Path, name)
	switch res.Kind {
	case ResolvedReplacement:
		target := res.Target
		if target.Type == "" {
			target.Type = t
		}
		repl, found, err := l.store.Get(ctx, target.Type, target.Name)
		if err != nil {
			return Record{}, err
		}
		if !found {
			return Record{}, &NotFoundError{Type: t, Name: name, Reason: NotFoundDangling, Target: target}
		}
		l.logger.Debug("lookup redirected",
			zap.String("type", string(t)),
			zap.String("from", name),
			zap.String("to", repl.Name))
		l.store.RememberAlias(t, name, repl)
		return repl, nil
	case ResolvedIgnored:
		return Record{}, &NotFoundError{Type: t, Name: name, Reason: NotFoundIgnored}
	case ResolvedPending:
		return Record{}, &PendingRedirectionError{Type: t, Name: name, Location: loc.Path}
	default:
		return Record{}, &NotFoundError{Type: t, Name: name, Reason: NotFoundMissing}
	}
}

// GetAll returns every record of type t, loading on first access.
func (l *Loader) GetAll(ctx context.Context, t TemplateType) ([]Record, error) {
	return l.store.GetAll(ctx, t)
}

// LoadAllUncached loads type t straight from the backend without touching
// the cache. Use it for tooling that must see current backend state.
func (l *Loader) LoadAllUncached(ctx context.Context, t TemplateType) ([]Record, error) {
	return l.store.LoadAllUncached(ctx, t)
}

// Invalidate drops the cached entry for t.
func (l *Loader) Invalidate(t TemplateType) {
	l.store.Invalidate(t)
}

// InvalidateAll drops every cached entry.
func (l *Loader) InvalidateAll() {
	l.store.InvalidateAll()
}

// CachedTypes returns the currently installed types, sorted.
func (l *Loader) CachedTypes() []TemplateType {
	return l.store.CachedTypes()
}

// Locations returns the loader's location resolver.
func (l *Loader) Locations() *LocationResolver {
	return l.locations
}

// Redirects returns the loader's redirection table.
func (l *Loader) Redirects() *RedirectTable {
	return l.redirects
}
