package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"template-catalog/core/catalog"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a manifest that parsed as YAML but violates the catalog
// table rules. Callers match it with errors.Is.
var ErrInvalid = errors.New("manifest: invalid")

// Tables holds everything a manifest contributes to a catalog: the exact
// location table, the compiled ancestor rules, and the redirection entries.
// A nil field list means the manifest omitted the section.
type Tables struct {
	Locations map[catalog.TemplateType]catalog.LocationSpec
	Rules     []catalog.AncestorRule
	Redirects []catalog.RedirectionEntry
}

// fileManifest is the YAML manifest shape. Kinds and actions stay strings
// here so that typos fail validation with the offending spelling in the
// error instead of zero-value surprises.
type fileManifest struct {
	Types     []typeMapping   `yaml:"types"`
	Ancestors []ancestorEntry `yaml:"ancestors"`
	Redirects []redirectEntry `yaml:"redirects"`
}

type typeMapping struct {
	Type string `yaml:"type"`
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

type ancestorEntry struct {
	Governing   string   `yaml:"governing"`
	Descendants []string `yaml:"descendants"`
}

type redirectEntry struct {
	Location string `yaml:"location"`
	OldName  string `yaml:"old_name"`
	Action   string `yaml:"action"`
	NewType  string `yaml:"new_type"`
	NewName  string `yaml:"new_name"`
}

// ParseBytes parses a YAML manifest into catalog tables.
func ParseBytes(data []byte) (*Tables, error) {
	var m fileManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return buildTables(&m)
}

// ParseFile reads and parses a manifest file.
func ParseFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseFS reads and parses a manifest from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string) (*Tables, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read fs: %w", err)
	}
	return ParseBytes(data)
}

func buildTables(m *fileManifest) (*Tables, error) {
	t := &Tables{}

	if len(m.Types) > 0 {
		t.Locations = make(map[catalog.TemplateType]catalog.LocationSpec, len(m.Types))
	}
	for i, tm := range m.Types {
		if tm.Type == "" {
			return nil, fmt.Errorf("%w: types[%d]: missing type", ErrInvalid, i)
		}
		typ := catalog.TemplateType(tm.Type)
		if _, dup := t.Locations[typ]; dup {
			return nil, fmt.Errorf("%w: types[%d]: type %q mapped twice", ErrInvalid, i, tm.Type)
		}
		spec, err := locationSpec(tm)
		if err != nil {
			return nil, fmt.Errorf("%w: types[%d]: %w", ErrInvalid, i, err)
		}
		t.Locations[typ] = spec
	}

	for i, a := range m.Ancestors {
		if a.Governing == "" {
			return nil, fmt.Errorf("%w: ancestors[%d]: missing governing type", ErrInvalid, i)
		}
		gov := catalog.TemplateType(a.Governing)
		if _, ok := t.Locations[gov]; !ok {
			return nil, fmt.Errorf("%w: ancestors[%d]: governing type %q has no location mapping", ErrInvalid, i, a.Governing)
		}
		if len(a.Descendants) == 0 {
			return nil, fmt.Errorf("%w: ancestors[%d]: no descendants", ErrInvalid, i)
		}
		descendants := make([]catalog.TemplateType, len(a.Descendants))
		for j, d := range a.Descendants {
			descendants[j] = catalog.TemplateType(d)
		}
		t.Rules = append(t.Rules, catalog.AncestorRule{
			Governing: gov,
			Matches:   catalog.MatchTypes(descendants...),
		})
	}

	for i, r := range m.Redirects {
		entry, err := redirectionEntry(r)
		if err != nil {
			return nil, fmt.Errorf("%w: redirects[%d]: %w", ErrInvalid, i, err)
		}
		t.Redirects = append(t.Redirects, entry)
	}
	// Key uniqueness is the redirect table's invariant; building one here
	// surfaces duplicates at parse time instead of at catalog construction.
	if _, err := catalog.NewRedirectTable(t.Redirects); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return t, nil
}

func locationSpec(tm typeMapping) (catalog.LocationSpec, error) {
	switch tm.Kind {
	case "folder":
		if tm.Path == "" {
			return catalog.LocationSpec{}, fmt.Errorf("folder kind requires a path")
		}
		// Folder paths carry a trailing slash in location specs.
		path := tm.Path
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
		return catalog.FolderLocation(path), nil
	case "singleton":
		if tm.Path == "" {
			return catalog.LocationSpec{}, fmt.Errorf("singleton kind requires a path")
		}
		return catalog.SingletonLocation(tm.Path), nil
	case "empty":
		return catalog.EmptyLocation(), nil
	default:
		return catalog.LocationSpec{}, fmt.Errorf("unknown kind %q", tm.Kind)
	}
}

func redirectionEntry(r redirectEntry) (catalog.RedirectionEntry, error) {
	if r.Location == "" {
		return catalog.RedirectionEntry{}, fmt.Errorf("missing location")
	}
	if r.OldName == "" {
		return catalog.RedirectionEntry{}, fmt.Errorf("missing old_name")
	}
	action, err := catalog.ParseRedirectAction(r.Action)
	if err != nil {
		return catalog.RedirectionEntry{}, err
	}
	if action == catalog.RedirectReplace && r.NewName == "" {
		return catalog.RedirectionEntry{}, fmt.Errorf("replace action requires new_name")
	}
	return catalog.RedirectionEntry{
		Location: r.Location,
		OldName:  r.OldName,
		Action:   action,
		NewType:  catalog.TemplateType(r.NewType),
		NewName:  r.NewName,
	}, nil
}
