package catalog

import "context"

// Backend supplies raw records for a resolved location. Implementations sit
// in front of whatever actually holds the content (object storage, a local
// content directory, fixtures in tests) and are free to be slow; the store
// collapses cached loads per type, but distinct types sharing a folder and
// uncached loads may still call concurrently, so implementations must be
// safe for concurrent use.
//
// Load is never called with an empty LocationSpec. For folder locations it
// returns every record under the prefix; for singletons the records found at
// the exact path. Record order is preserved by the store and decides which
// record wins when names collide (later wins). Returning an empty slice is
// valid and is cached like any other result.
type Backend interface {
	Load(ctx context.Context, loc LocationSpec) ([]Record, error)
}

// BackendFunc adapts a plain function to the Backend interface.
type BackendFunc func(ctx context.Context, loc LocationSpec) ([]Record, error)

// Load calls f.
func (f BackendFunc) Load(ctx context.Context, loc LocationSpec) ([]Record, error) {
	return f(ctx, loc)
}
