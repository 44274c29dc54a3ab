package backend_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"template-catalog/core/backend"
	"template-catalog/core/catalog"
	"template-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listing(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func object(doc string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(doc))
}

func TestObjectStore_LoadFolder(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "content", mock.Anything).Return(listing(
		minio.ObjectInfo{Key: "Data/Factions/vanguard.json"},
		minio.ObjectInfo{Key: "Data/Factions/readme.txt"},
		minio.ObjectInfo{Key: "Data/Factions/ascendancy.json"},
	))
	client.On("GetObject", mock.Anything, "content", "Data/Factions/ascendancy.json", mock.Anything).
		Return(object(`{"name":"ascendancy","color":"gold"}`), nil)
	client.On("GetObject", mock.Anything, "content", "Data/Factions/vanguard.json", mock.Anything).
		Return(object(`{"color":"red"}`), nil)

	b := backend.NewObjectStore(client, "content", zap.NewNop())
	records, err := b.Load(context.Background(), catalog.FolderLocation("Data/Factions/"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Lexical key order; non-record objects skipped.
	assert.Equal(t, "ascendancy", records[0].Name)
	// Nameless document falls back to the file stem.
	assert.Equal(t, "vanguard", records[1].Name)
	assert.JSONEq(t, `{"color":"red"}`, string(records[1].Data))

	client.AssertExpectations(t)
}

func TestObjectStore_LoadFolderMultiRecordDocument(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "content", mock.Anything).Return(listing(
		minio.ObjectInfo{Key: "Data/Tags/combat.json"},
	))
	client.On("GetObject", mock.Anything, "content", "Data/Tags/combat.json", mock.Anything).
		Return(object(`[{"name":"armored"},{"name":"shielded"}]`), nil)

	b := backend.NewObjectStore(client, "content", zap.NewNop())
	records, err := b.Load(context.Background(), catalog.FolderLocation("Data/Tags/"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "armored", records[0].Name)
	assert.Equal(t, "shielded", records[1].Name)
}

func TestObjectStore_LoadFolderListError(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "content", mock.Anything).Return(listing(
		minio.ObjectInfo{Key: "Data/Factions/vanguard.json"},
		minio.ObjectInfo{Err: assert.AnError},
	))

	b := backend.NewObjectStore(client, "content", zap.NewNop())
	_, err := b.Load(context.Background(), catalog.FolderLocation("Data/Factions/"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestObjectStore_LoadFolderGetError(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "content", mock.Anything).Return(listing(
		minio.ObjectInfo{Key: "Data/Factions/vanguard.json"},
	))
	client.On("GetObject", mock.Anything, "content", "Data/Factions/vanguard.json", mock.Anything).
		Return(nil, assert.AnError)

	b := backend.NewObjectStore(client, "content", zap.NewNop())
	_, err := b.Load(context.Background(), catalog.FolderLocation("Data/Factions/"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Data/Factions/vanguard.json")
}

func TestObjectStore_LoadSingleton(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "content", "Data/GameSetup.json", mock.Anything).
		Return(minio.ObjectInfo{Key: "Data/GameSetup.json"}, nil)
	client.On("GetObject", mock.Anything, "content", "Data/GameSetup.json", mock.Anything).
		Return(object(`{"name":"game_setup","start_year":2207}`), nil)

	b := backend.NewObjectStore(client, "content", zap.NewNop())
	records, err := b.Load(context.Background(), catalog.SingletonLocation("Data/GameSetup.json"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "game_setup", records[0].Name)
}

func TestObjectStore_LoadSingletonMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("StatObject", mock.Anything, "content", "Data/GameSetup.json", mock.Anything).
		Return(minio.ObjectInfo{}, assert.AnError)

	b := backend.NewObjectStore(client, "content", zap.NewNop())
	_, err := b.Load(context.Background(), catalog.SingletonLocation("Data/GameSetup.json"))
	require.Error(t, err)
	// The payload is never fetched for a missing object.
	client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectStore_LoadEmptyLocationRejected(t *testing.T) {
	b := backend.NewObjectStore(new(mocks.Client), "content", zap.NewNop())
	_, err := b.Load(context.Background(), catalog.EmptyLocation())
	require.Error(t, err)
}

func TestObjectStore_VerifyBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "content").Return(true, nil)

		b := backend.NewObjectStore(client, "content", zap.NewNop())
		assert.NoError(t, b.VerifyBucket(context.Background()))
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "content").Return(false, nil)

		b := backend.NewObjectStore(client, "content", zap.NewNop())
		err := b.VerifyBucket(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content")
	})

	t.Run("Unreachable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "content").Return(false, assert.AnError)

		b := backend.NewObjectStore(client, "content", zap.NewNop())
		assert.ErrorIs(t, b.VerifyBucket(context.Background()), assert.AnError)
	})
}
