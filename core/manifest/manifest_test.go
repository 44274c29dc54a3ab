package manifest_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"template-catalog/core/catalog"
	"template-catalog/core/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullManifest = `
types:
  - type: FactionTemplate
    kind: folder
    path: Data/Factions/
  - type: BaseItemTemplate
    kind: folder
    path: Data/Items
  - type: GameSetupTemplate
    kind: singleton
    path: Data/GameSetup.json
  - type: LooseTemplate
    kind: empty
ancestors:
  - governing: BaseItemTemplate
    descendants: [WeaponTemplate, ArmorTemplate]
redirects:
  - location: Data/Items/
    old_name: sword_old
    action: replace
    new_type: WeaponTemplate
    new_name: sword.iron
  - location: Data/Items/
    old_name: relic_sword
    action: ignore
  - location: Data/Factions/
    old_name: old_guard
    action: todo
`

func TestParseBytes(t *testing.T) {
	tables, err := manifest.ParseBytes([]byte(fullManifest))
	require.NoError(t, err)

	require.Len(t, tables.Locations, 4)
	assert.Equal(t, catalog.FolderLocation("Data/Factions/"), tables.Locations["FactionTemplate"])
	// A missing trailing slash is supplied during parsing.
	assert.Equal(t, catalog.FolderLocation("Data/Items/"), tables.Locations["BaseItemTemplate"])
	assert.Equal(t, catalog.SingletonLocation("Data/GameSetup.json"), tables.Locations["GameSetupTemplate"])
	assert.True(t, tables.Locations["LooseTemplate"].IsEmpty())

	require.Len(t, tables.Rules, 1)
	rule := tables.Rules[0]
	assert.Equal(t, catalog.TemplateType("BaseItemTemplate"), rule.Governing)
	assert.True(t, rule.Matches("WeaponTemplate"))
	assert.True(t, rule.Matches("ArmorTemplate"))
	assert.False(t, rule.Matches("FactionTemplate"))

	require.Len(t, tables.Redirects, 3)
	assert.Equal(t, catalog.RedirectionEntry{
		Location: "Data/Items/",
		OldName:  "sword_old",
		Action:   catalog.RedirectReplace,
		NewType:  "WeaponTemplate",
		NewName:  "sword.iron",
	}, tables.Redirects[0])
	assert.Equal(t, catalog.RedirectIgnore, tables.Redirects[1].Action)
	assert.Equal(t, catalog.RedirectToDo, tables.Redirects[2].Action)
}

func TestParseBytes_EmptyManifest(t *testing.T) {
	tables, err := manifest.ParseBytes([]byte("{}"))
	require.NoError(t, err)
	assert.Empty(t, tables.Locations)
	assert.Empty(t, tables.Rules)
	assert.Empty(t, tables.Redirects)
}

func TestParseBytes_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "BadYAML",
			manifest: "types: [",
			wantErr:  "invalid",
		},
		{
			name: "MissingType",
			manifest: `
types:
  - kind: folder
    path: Data/X/
`,
			wantErr: "missing type",
		},
		{
			name: "UnknownKind",
			manifest: `
types:
  - type: FactionTemplate
    kind: directory
    path: Data/Factions/
`,
			wantErr: `unknown kind "directory"`,
		},
		{
			name: "FolderWithoutPath",
			manifest: `
types:
  - type: FactionTemplate
    kind: folder
`,
			wantErr: "requires a path",
		},
		{
			name: "DuplicateType",
			manifest: `
types:
  - type: FactionTemplate
    kind: folder
    path: Data/Factions/
  - type: FactionTemplate
    kind: folder
    path: Data/Old/
`,
			wantErr: "mapped twice",
		},
		{
			name: "GoverningWithoutLocation",
			manifest: `
ancestors:
  - governing: BaseItemTemplate
    descendants: [WeaponTemplate]
`,
			wantErr: "no location mapping",
		},
		{
			name: "RuleWithoutDescendants",
			manifest: `
types:
  - type: BaseItemTemplate
    kind: folder
    path: Data/Items/
ancestors:
  - governing: BaseItemTemplate
`,
			wantErr: "no descendants",
		},
		{
			name: "UnknownAction",
			manifest: `
redirects:
  - location: Data/Items/
    old_name: sword_old
    action: repalce
`,
			wantErr: `unknown redirect action "repalce"`,
		},
		{
			name: "ReplaceWithoutNewName",
			manifest: `
redirects:
  - location: Data/Items/
    old_name: sword_old
    action: replace
`,
			wantErr: "requires new_name",
		},
		{
			name: "RedirectWithoutLocation",
			manifest: `
redirects:
  - old_name: sword_old
    action: ignore
`,
			wantErr: "missing location",
		},
		{
			name: "DuplicateRedirectKey",
			manifest: `
redirects:
  - location: Data/Items/
    old_name: sword_old
    action: ignore
  - location: Data/Items/
    old_name: sword_old
    action: todo
`,
			wantErr: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.ParseBytes([]byte(tt.manifest))
			require.Error(t, err)
			assert.ErrorIs(t, err, manifest.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullManifest), 0644))

	tables, err := manifest.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, tables.Locations, 4)

	_, err = manifest.ParseFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseFS(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.yaml": {Data: []byte(fullManifest)},
	}

	tables, err := manifest.ParseFS(fsys, "catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, tables.Redirects, 3)

	_, err = manifest.ParseFS(fsys, "absent.yaml")
	assert.Error(t, err)
}
