package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"template-catalog/core/backend"
	"template-catalog/core/catalog"
	"template-catalog/core/config"
	"template-catalog/core/manifest"
	"template-catalog/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildLoader wires a catalog.Loader from configuration: location and
// redirection tables from the manifest file, the database, or the built-in
// defaults, over an object storage or local directory backend.
func buildLoader(ctx context.Context, cfg *config.Config, logg *zap.Logger, db *gorm.DB) (*catalog.Loader, error) {
	if !cfg.Catalog.IsValidRedirectSource() {
		return nil, fmt.Errorf("invalid redirect source %q", cfg.Catalog.RedirectSource)
	}

	var tables *manifest.Tables
	if cfg.Catalog.Manifest != "" {
		t, err := manifest.ParseFile(cfg.Catalog.Manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		tables = t
		logg.Info("Manifest loaded",
			zap.String("path", cfg.Catalog.Manifest),
			zap.Int("types", len(t.Locations)),
			zap.Int("redirects", len(t.Redirects)))
	}

	entries, err := redirectEntries(ctx, cfg, tables, db)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{
		catalog.WithLogger(logg),
		catalog.WithLoadTimeout(time.Duration(cfg.Catalog.LoadTimeoutSeconds) * time.Second),
	}
	if tables != nil && len(tables.Locations) > 0 {
		opts = append(opts, catalog.WithLocations(catalog.NewLocationResolver(tables.Locations, tables.Rules)))
	}
	if len(entries) > 0 {
		table, err := catalog.NewRedirectTable(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to build redirect table: %w", err)
		}
		opts = append(opts, catalog.WithRedirects(table))
	}

	b, err := buildBackend(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}

	return catalog.New(b, opts...), nil
}

// redirectEntries picks the redirection source. The manifest is the default;
// deployments that manage renames in the game database set
// catalog.redirect_source to "database" and must have a connection.
func redirectEntries(ctx context.Context, cfg *config.Config, tables *manifest.Tables, db *gorm.DB) ([]catalog.RedirectionEntry, error) {
	switch cfg.Catalog.RedirectSource {
	case catalog.RedirectSourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("redirect source is %q but the database is not connected", cfg.Catalog.RedirectSource)
		}
		return manifest.LoadRedirectsDB(ctx, db)
	default:
		if tables == nil {
			return nil, nil
		}
		return tables.Redirects, nil
	}
}

func buildBackend(ctx context.Context, cfg *config.Config, logg *zap.Logger) (catalog.Backend, error) {
	if dir := cfg.Catalog.ContentDir; dir != "" {
		logg.Info("Serving templates from local directory", zap.String("dir", dir))
		return backend.NewDir(os.DirFS(dir), logg), nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	store := backend.NewObjectStore(client, cfg.Storage.Bucket, logg)
	if err := store.VerifyBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
