package backend

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"template-catalog/core/catalog"

	"go.uber.org/zap"
)

// Dir loads template records from a file system tree: a local content
// checkout during development, or fixture trees in tests. Folder locations
// are walked recursively in lexical order; singleton locations are read as
// single files.
type Dir struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewDir creates a backend over the given file system.
func NewDir(fsys fs.FS, logger *zap.Logger) *Dir {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dir{fsys: fsys, logger: logger}
}

// Load implements catalog.Backend.
func (b *Dir) Load(ctx context.Context, loc catalog.LocationSpec) ([]catalog.Record, error) {
	switch loc.Kind {
	case catalog.LocationFolder:
		return b.loadFolder(loc.Path)
	case catalog.LocationSingleton:
		return b.loadFile(loc.Path)
	default:
		return nil, fmt.Errorf("backend: cannot load location %s", loc)
	}
}

func (b *Dir) loadFolder(prefix string) ([]catalog.Record, error) {
	// Location paths carry a trailing slash; fs paths must not.
	dir := path.Clean(strings.TrimSuffix(prefix, "/"))

	var records []catalog.Record
	err := fs.WalkDir(b.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("backend: walking %q: %w", p, err)
		}
		if d.IsDir() || !strings.HasSuffix(p, recordExt) {
			return nil
		}
		recs, err := b.loadFile(p)
		if err != nil {
			return err
		}
		records = append(records, recs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (b *Dir) loadFile(p string) ([]catalog.Record, error) {
	data, err := fs.ReadFile(b.fsys, path.Clean(p))
	if err != nil {
		return nil, fmt.Errorf("backend: read %q: %w", p, err)
	}
	recs, err := ParseDocument(p, data)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("document loaded",
		zap.String("path", p),
		zap.Int("records", len(recs)))
	return recs, nil
}
