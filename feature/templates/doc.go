// Package templates exposes the catalog over HTTP.
//
// The feature is a thin surface over catalog.Loader: lookups serve from the
// memoized cache, redirections are followed transparently, and cache control
// is gated by the catalog.allow_reload configuration.
//
// # HTTP Endpoints
//
//   - GET  /templates/types : Known types with resolved location and cache state.
//   - GET  /templates/:type : Loads a type through the cache, returns count and names.
//   - GET  /templates/:type/uncached : Loads straight from the backend, cache untouched.
//   - GET  /templates/:type/:name : Single record lookup. Misses map to 404,
//     undecided redirections to 409, backend failures to 502.
//   - POST /templates/:type/invalidate : Drops one cached type (403 when reloads are disabled).
//   - POST /templates/invalidate : Drops the whole cache (403 when reloads are disabled).
//   - GET  /redirects : The redirection table, ordered by location and old name.
package templates
