package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds one backend load. Loads run detached from the
// triggering caller's context because their result is shared with every
// waiter, so the timeout is the only thing stopping a hung backend.
const DefaultLoadTimeout = 2 * time.Minute

// cacheEntry is the installed result of one type load.
//
// records and byName are immutable after install. aliases is mutated under
// the store mutex as redirected lookups resolve; its keys never collide
// with byName keys, so byName always reflects exactly the loaded records.
type cacheEntry struct {
	records []Record
	byName  map[string]Record
	aliases map[string]Record
}

func (e *cacheEntry) find(name string) (Record, bool) {
	if rec, ok := e.byName[name]; ok {
		return rec, true
	}
	rec, ok := e.aliases[name]
	return rec, ok
}

// Store memoizes backend loads per template type. Concurrent first accesses
// of one type collapse into a single backend call whose result every caller
// shares; installed types answer from memory without touching the backend
// again until invalidated.
//
// Failed loads are never installed. Every waiter of the failed flight gets
// the error and the next access retries from scratch.
type Store struct {
	backend     Backend
	locations   *LocationResolver
	logger      *zap.Logger
	loadTimeout time.Duration

	group singleflight.Group

	mu      sync.RWMutex
	entries map[TemplateType]*cacheEntry
	gens    map[TemplateType]uint64
	allGen  uint64
}

// NewStore builds a store over the given backend and location resolver.
func NewStore(backend Backend, locations *LocationResolver, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:     backend,
		locations:   locations,
		logger:      logger,
		loadTimeout: DefaultLoadTimeout,
		entries:     make(map[TemplateType]*cacheEntry),
		gens:        make(map[TemplateType]uint64),
	}
}

// GetAll returns every record of type t, loading and installing the type on
// first access. The returned slice is a snapshot the caller may keep.
func (s *Store) GetAll(ctx context.Context, t TemplateType) ([]Record, error) {
	s.mu.RLock()
	entry, ok := s.entries[t]
	s.mu.RUnlock()
	if !ok {
		var err error
		if entry, err = s.load(ctx, t); err != nil {
			return nil, err
		}
	}
	return slices.Clone(entry.records), nil
}

// Get returns the record of type t with the given name. The boolean is
// false on a plain miss; redirection handling lives above the store.
func (s *Store) Get(ctx context.Context, t TemplateType, name string) (Record, bool, error) {
	s.mu.RLock()
	if entry, ok := s.entries[t]; ok {
		rec, found := entry.find(name)
		s.mu.RUnlock()
		return rec, found, nil
	}
	s.mu.RUnlock()

	entry, err := s.load(ctx, t)
	if err != nil {
		return Record{}, false, err
	}
	// A freshly built entry has no aliases yet.
	rec, found := entry.byName[name]
	return rec, found, nil
}

// LoadAllUncached loads type t directly from the backend, bypassing the
// cache in both directions: nothing cached is consulted and nothing loaded
// is installed. Empty locations yield no records and no backend call.
func (s *Store) LoadAllUncached(ctx context.Context, t TemplateType) ([]Record, error) {
	loc := s.locations.Resolve(t)
	if loc.IsEmpty() {
		return []Record{}, nil
	}
	recs, err := s.backend.Load(ctx, loc)
	if err != nil {
		return nil, &BackendError{Type: t, Location: loc, Err: err}
	}
	out := make([]Record, len(recs))
	for i, rec := range recs {
		rec.Type = t
		out[i] = rec
	}
	return out, nil
}

// Invalidate drops the cached entry for t. In-flight loads of t keep
// running for their waiters but their result is not installed; the next
// access starts a fresh load.
func (s *Store) Invalidate(t TemplateType) {
	s.mu.Lock()
	s.gens[t]++
	delete(s.entries, t)
	s.mu.Unlock()
	s.logger.Info("cache invalidated", zap.String("type", string(t)))
}

// InvalidateAll drops every cached entry, including results of loads still
// in flight when the call happens.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	dropped := len(s.entries)
	s.allGen++
	s.entries = make(map[TemplateType]*cacheEntry)
	s.mu.Unlock()
	s.logger.Info("cache invalidated", zap.String("type", "*"), zap.Int("dropped", dropped))
}

// RememberAlias shortcuts future lookups of name to rec inside t's current
// entry. A no-op when t is not cached (the alias would be stale by the time
// it mattered) or when name collides with a real record.
func (s *Store) RememberAlias(t TemplateType, name string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[t]
	if !ok {
		return
	}
	if _, taken := entry.byName[name]; taken {
		return
	}
	entry.aliases[name] = rec
}

// CachedTypes returns the types currently installed, sorted.
func (s *Store) CachedTypes() []TemplateType {
	s.mu.RLock()
	types := make([]TemplateType, 0, len(s.entries))
	for t := range s.entries {
		types = append(types, t)
	}
	s.mu.RUnlock()
	slices.Sort(types)
	return types
}

// Locations exposes the resolver the store classifies types with.
func (s *Store) Locations() *LocationResolver {
	return s.locations
}

// load collapses concurrent loads of t into one backend call. The flight
// key embeds the generation counters so that accesses after an invalidation
// start a fresh flight instead of joining a doomed one.
func (s *Store) load(ctx context.Context, t TemplateType) (*cacheEntry, error) {
	s.mu.RLock()
	if entry, ok := s.entries[t]; ok {
		s.mu.RUnlock()
		return entry, nil
	}
	gen, allGen := s.gens[t], s.allGen
	s.mu.RUnlock()

	key := fmt.Sprintf("%s#%d.%d", t, gen, allGen)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.loadSlow(ctx, t, gen, allGen)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("joined in-flight load", zap.String("type", string(t)))
	}
	return v.(*cacheEntry), nil
}

func (s *Store) loadSlow(ctx context.Context, t TemplateType, gen, allGen uint64) (*cacheEntry, error) {
	// Double check: another flight may have installed the entry between
	// the caller's miss and this flight starting.
	s.mu.RLock()
	entry, ok := s.entries[t]
	s.mu.RUnlock()
	if ok {
		return entry, nil
	}

	loc := s.locations.Resolve(t)

	var recs []Record
	if !loc.IsEmpty() {
		// The result is shared with every waiter, so the load must not
		// die with the first caller's context.
		loadCtx := context.WithoutCancel(ctx)
		if s.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, s.loadTimeout)
			defer cancel()
		}

		start := time.Now()
		var err error
		recs, err = s.backend.Load(loadCtx, loc)
		if err != nil {
			s.logger.Error("backend load failed",
				zap.String("type", string(t)),
				zap.String("location", loc.String()),
				zap.Error(err))
			return nil, &BackendError{Type: t, Location: loc, Err: err}
		}
		s.logger.Info("templates loaded",
			zap.String("type", string(t)),
			zap.String("location", loc.String()),
			zap.Int("count", len(recs)),
			zap.Duration("took", time.Since(start)))
	}

	entry = s.buildEntry(t, loc, recs)

	s.mu.Lock()
	fresh := s.gens[t] == gen && s.allGen == allGen
	if fresh {
		s.entries[t] = entry
	}
	s.mu.Unlock()
	if !fresh {
		// Waiters still get the records they asked for; only the
		// installation is skipped.
		s.logger.Warn("discarding stale load", zap.String("type", string(t)))
	}
	return entry, nil
}

func (s *Store) buildEntry(t TemplateType, loc LocationSpec, recs []Record) *cacheEntry {
	entry := &cacheEntry{
		records: make([]Record, len(recs)),
		byName:  make(map[string]Record, len(recs)),
		aliases: make(map[string]Record),
	}
	for i, rec := range recs {
		rec.Type = t
		entry.records[i] = rec
		if _, dup := entry.byName[rec.Name]; dup {
			s.logger.Warn("duplicate template name, later record wins",
				zap.String("type", string(t)),
				zap.String("name", rec.Name))
		}
		entry.byName[rec.Name] = rec
	}
	if loc.Kind == LocationSingleton && len(entry.records) > 1 {
		s.logger.Warn("singleton location holds multiple records",
			zap.String("type", string(t)),
			zap.String("location", loc.String()),
			zap.Int("count", len(entry.records)))
	}
	return entry
}
