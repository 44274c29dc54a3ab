// Package catalog loads named game content templates by type and caches
// them in memory for the lifetime of the process.
//
// Content is organized as records (name + opaque JSON payload) grouped by
// template type. Each type maps to a storage location resolved once by a
// LocationResolver: a folder of records, a single fixed path, or nothing at
// all for types that only exist embedded in other content.
//
// # Architecture
//
// The package consists of four components:
//
// 1. LocationResolver: total classification of template types into storage
// locations, driven by an exact table plus ordered ancestor rules for type
// hierarchies that share a folder.
//
// 2. Store: the memoized cache. First access of a type triggers exactly one
// backend load shared by all concurrent callers (singleflight); installed
// types answer from memory. Failed loads are never cached, so transient
// backend trouble heals on the next access.
//
// 3. RedirectTable: resolution of deprecated record names. Renamed records
// resolve to their replacement, retired ones report a soft miss, and
// entries still awaiting a migration decision fail hard so stale content
// references surface during development.
//
// 4. Loader: the facade combining the three, plus typed decode helpers
// (Decode, GetAs, GetAllAs) for consumers with concrete schemas.
//
// # Concurrency
//
// All components are safe for concurrent use. Loads run detached from the
// triggering caller's context because their result is shared; invalidation
// during a load lets the load finish for its waiters but discards the
// result instead of installing it.
//
// # Usage Example
//
//	loader := catalog.New(backend,
//	    catalog.WithRedirects(table),
//	    catalog.WithLogger(logger),
//	)
//
//	// Typed access
//	factions, err := catalog.GetAllAs[Faction](ctx, loader, catalog.TypeFaction)
//
//	// Name lookup with redirection handling
//	rec, err := loader.Get(ctx, catalog.TypeWeapon, "mod_weapon.heavy.cannon_long")
//
//	// Tooling that must bypass the cache
//	records, err := loader.LoadAllUncached(ctx, catalog.TypeFaction)
package catalog
