package templates

import (
	"errors"

	"template-catalog/core/catalog"
	"template-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for template lookups and cache control.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the template routes. The static /types and
// /invalidate routes come before the :type parameter routes so they are not
// swallowed by the parameter match.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/templates")
	group.Get("/types", h.HandleTypes)
	group.Post("/invalidate", h.HandleInvalidateAll)
	group.Get("/:type", h.HandleSummary)
	group.Get("/:type/uncached", h.HandleUncached)
	group.Get("/:type/:name", h.HandleLookup)
	group.Post("/:type/invalidate", h.HandleInvalidate)

	app.Get("/redirects", h.HandleRedirects)
}

// HandleTypes lists the known template types with location and cache state.
func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": h.service.Types()})
}

// HandleSummary loads a type through the cache and returns its summary.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	t := catalog.TemplateType(c.Params("type"))

	summary, err := h.service.Summary(c.Context(), t)
	if err != nil {
		l.Error("Template summary failed", zap.String("type", string(t)), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleUncached loads a type straight from the backend, bypassing the cache.
func (h *Handler) HandleUncached(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	t := catalog.TemplateType(c.Params("type"))
	l.Info("Uncached load requested", zap.String("type", string(t)))

	summary, err := h.service.Uncached(c.Context(), t)
	if err != nil {
		l.Error("Uncached load failed", zap.String("type", string(t)), zap.Error(err))
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleLookup returns a single record by type and name.
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	t := catalog.TemplateType(c.Params("type"))
	name := c.Params("name")

	rec, err := h.service.Lookup(c.Context(), t, name)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			l.Error("Template lookup failed",
				zap.String("type", string(t)),
				zap.String("name", name),
				zap.Error(err))
		}
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// HandleInvalidate drops the cached entry for one type.
func (h *Handler) HandleInvalidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	t := catalog.TemplateType(c.Params("type"))

	if err := h.service.Invalidate(t); err != nil {
		l.Warn("Invalidation rejected", zap.String("type", string(t)), zap.Error(err))
		return respondError(c, err)
	}
	l.Info("Cache invalidated", zap.String("type", string(t)))
	return c.JSON(fiber.Map{"status": "invalidated", "type": t})
}

// HandleInvalidateAll drops every cached entry.
func (h *Handler) HandleInvalidateAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.InvalidateAll(); err != nil {
		l.Warn("Invalidation rejected", zap.Error(err))
		return respondError(c, err)
	}
	l.Info("Cache invalidated", zap.String("type", "*"))
	return c.JSON(fiber.Map{"status": "invalidated"})
}

// HandleRedirects returns the redirection table.
func (h *Handler) HandleRedirects(c *fiber.Ctx) error {
	entries := h.service.Redirects()
	return c.JSON(fiber.Map{
		"count":     len(entries),
		"redirects": entries,
	})
}

// respondError translates catalog errors into HTTP status codes: soft misses
// are 404, undecided redirections 409, backend trouble 502, forbidden
// reloads 403.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, catalog.ErrPendingRedirection):
		status = fiber.StatusConflict
	case errors.Is(err, catalog.ErrBackendUnavailable):
		status = fiber.StatusBadGateway
	case errors.Is(err, ErrReloadDisabled):
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
