package backend_test

import (
	"context"
	"testing"
	"testing/fstest"

	"template-catalog/core/backend"
	"template-catalog/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDir_LoadFolder(t *testing.T) {
	fsys := fstest.MapFS{
		"Data/Items/sword_old.json":        {Data: []byte(`{"name":"sword.iron","damage":4}`)},
		"Data/Items/axes/axe_heavy.json":   {Data: []byte(`{"name":"axe.heavy"}`)},
		"Data/Items/unnamed_shield.json":   {Data: []byte(`{"block":12}`)},
		"Data/Items/notes.txt":             {Data: []byte(`not a record`)},
		"Data/Missions/first_contact.json": {Data: []byte(`{"name":"first_contact"}`)},
	}

	b := backend.NewDir(fsys, zap.NewNop())
	records, err := b.Load(context.Background(), catalog.FolderLocation("Data/Items/"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	// WalkDir visits lexically: the nested axes/ dir sorts before the
	// top-level s* and u* files. Records outside the prefix never appear.
	assert.Equal(t, "axe.heavy", records[0].Name)
	assert.Equal(t, "sword.iron", records[1].Name)
	assert.Equal(t, "unnamed_shield", records[2].Name)
	assert.JSONEq(t, `{"block":12}`, string(records[2].Data))
}

func TestDir_LoadFolderMultiRecordDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"Data/Tags/status.json": {Data: []byte(`[{"name":"burning"},{"name":"frozen"}]`)},
	}

	b := backend.NewDir(fsys, zap.NewNop())
	records, err := b.Load(context.Background(), catalog.FolderLocation("Data/Tags/"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "burning", records[0].Name)
	assert.Equal(t, "frozen", records[1].Name)
}

func TestDir_LoadFolderMissing(t *testing.T) {
	b := backend.NewDir(fstest.MapFS{}, zap.NewNop())
	_, err := b.Load(context.Background(), catalog.FolderLocation("Data/Items/"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Data/Items")
}

func TestDir_LoadFolderBadDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"Data/Items/ok.json":     {Data: []byte(`{"name":"ok"}`)},
		"Data/Items/broken.json": {Data: []byte(`{"name": "unterminated`)},
	}

	b := backend.NewDir(fsys, zap.NewNop())
	_, err := b.Load(context.Background(), catalog.FolderLocation("Data/Items/"))
	require.Error(t, err)
	// The failing document is named so content maintainers can find it.
	assert.Contains(t, err.Error(), "Data/Items/broken.json")
}

func TestDir_LoadSingleton(t *testing.T) {
	fsys := fstest.MapFS{
		"Data/GameSetup.json": {Data: []byte(`{"start_year":2207}`)},
	}

	b := backend.NewDir(fsys, zap.NewNop())
	records, err := b.Load(context.Background(), catalog.SingletonLocation("Data/GameSetup.json"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "GameSetup", records[0].Name)
}

func TestDir_LoadSingletonMissing(t *testing.T) {
	b := backend.NewDir(fstest.MapFS{}, zap.NewNop())
	_, err := b.Load(context.Background(), catalog.SingletonLocation("Data/GameSetup.json"))
	require.Error(t, err)
}

func TestDir_LoadEmptyLocationRejected(t *testing.T) {
	b := backend.NewDir(fstest.MapFS{}, zap.NewNop())
	_, err := b.Load(context.Background(), catalog.EmptyLocation())
	require.Error(t, err)
}
