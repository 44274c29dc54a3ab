package templates

import (
	"context"
	"errors"

	"template-catalog/core/catalog"

	"go.uber.org/zap"
)

// ErrReloadDisabled is returned by invalidation calls when the deployment
// forbids cache reloads.
var ErrReloadDisabled = errors.New("templates: cache reload disabled")

// Service exposes catalog operations to the HTTP surface.
type Service struct {
	loader      *catalog.Loader
	logger      *zap.Logger
	allowReload bool
}

// NewService creates a new templates service.
func NewService(loader *catalog.Loader, logger *zap.Logger, allowReload bool) *Service {
	return &Service{
		loader:      loader,
		logger:      logger,
		allowReload: allowReload,
	}
}

// TypeInfo describes one known template type.
type TypeInfo struct {
	Type     catalog.TemplateType `json:"type"`
	Location string               `json:"location"`
	Cached   bool                 `json:"cached"`
}

// TypeSummary describes the records loaded for one type.
type TypeSummary struct {
	Type     catalog.TemplateType `json:"type"`
	Location string               `json:"location"`
	Count    int                  `json:"count"`
	Names    []string             `json:"names"`
}

// Types lists the exactly mapped template types with their locations and
// cache state. Types reachable only through ancestor rules are not listed.
func (s *Service) Types() []TypeInfo {
	cached := make(map[catalog.TemplateType]bool)
	for _, t := range s.loader.CachedTypes() {
		cached[t] = true
	}

	known := s.loader.Locations().Known()
	infos := make([]TypeInfo, 0, len(known))
	for _, t := range known {
		infos = append(infos, TypeInfo{
			Type:     t,
			Location: s.loader.Locations().Resolve(t).String(),
			Cached:   cached[t],
		})
	}
	return infos
}

// Summary loads type t (through the cache) and summarizes it.
func (s *Service) Summary(ctx context.Context, t catalog.TemplateType) (TypeSummary, error) {
	records, err := s.loader.GetAll(ctx, t)
	if err != nil {
		return TypeSummary{}, err
	}
	return s.summarize(t, records), nil
}

// Uncached loads type t straight from the backend and summarizes it. The
// cache is neither consulted nor updated.
func (s *Service) Uncached(ctx context.Context, t catalog.TemplateType) (TypeSummary, error) {
	records, err := s.loader.LoadAllUncached(ctx, t)
	if err != nil {
		return TypeSummary{}, err
	}
	return s.summarize(t, records), nil
}

func (s *Service) summarize(t catalog.TemplateType, records []catalog.Record) TypeSummary {
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	return TypeSummary{
		Type:     t,
		Location: s.loader.Locations().Resolve(t).String(),
		Count:    len(records),
		Names:    names,
	}
}

// Lookup returns the record of type t named name, following redirections.
func (s *Service) Lookup(ctx context.Context, t catalog.TemplateType, name string) (catalog.Record, error) {
	return s.loader.Get(ctx, t, name)
}

// Invalidate drops the cached entry for t. Fails with ErrReloadDisabled when
// the deployment forbids reloads.
func (s *Service) Invalidate(t catalog.TemplateType) error {
	if !s.allowReload {
		return ErrReloadDisabled
	}
	s.loader.Invalidate(t)
	return nil
}

// InvalidateAll drops every cached entry. Fails with ErrReloadDisabled when
// the deployment forbids reloads.
func (s *Service) InvalidateAll() error {
	if !s.allowReload {
		return ErrReloadDisabled
	}
	s.loader.InvalidateAll()
	return nil
}

// Redirects returns the redirection table ordered by location and old name.
func (s *Service) Redirects() []catalog.RedirectionEntry {
	return s.loader.Redirects().Entries()
}
