package backend_test

import (
	"testing"

	"template-catalog/core/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Run("NamedObject", func(t *testing.T) {
		records, err := backend.ParseDocument("Data/Items/sword.json", []byte(`{"name":"sword.iron","damage":4}`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "sword.iron", records[0].Name)
		assert.JSONEq(t, `{"name":"sword.iron","damage":4}`, string(records[0].Data))
	})

	t.Run("NamelessObjectUsesStem", func(t *testing.T) {
		records, err := backend.ParseDocument("Data/Items/rusty_shield.json", []byte(`{"block":3}`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "rusty_shield", records[0].Name)
	})

	t.Run("ArrayWithLeadingWhitespace", func(t *testing.T) {
		doc := []byte("\n\t [{\"name\":\"a\"},{\"name\":\"b\"}]")
		records, err := backend.ParseDocument("Data/Tags/pair.json", doc)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0].Name)
		assert.Equal(t, "b", records[1].Name)
	})

	t.Run("ArrayEntryWithoutName", func(t *testing.T) {
		_, err := backend.ParseDocument("Data/Tags/pair.json", []byte(`[{"name":"a"},{"color":"red"}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 1")
	})

	t.Run("ArrayEntryNotAnObject", func(t *testing.T) {
		_, err := backend.ParseDocument("Data/Tags/pair.json", []byte(`[{"name":"a"},42]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 1")
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		_, err := backend.ParseDocument("Data/Items/empty.json", []byte("  \n "))
		require.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := backend.ParseDocument("Data/Items/garbage.json", []byte(`not json at all`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "garbage.json")
	})
}
