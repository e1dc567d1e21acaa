package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ms2go/internal/model"
)

func TestNpcMetadataStorage_TryGet(t *testing.T) {
	s := NewNpcMetadataStorage(NewTestNpc(21000001, "wolf"))

	npc, ok := s.TryGet(21000001)
	require.True(t, ok)
	assert.Equal(t, int32(21000001), npc.ID)

	_, ok = s.TryGet(1)
	assert.False(t, ok, "unknown npc must not be found")
}

func TestNpcMetadataStorage_TryLookupTag(t *testing.T) {
	s := NewNpcMetadataStorage(
		NewTestNpc(3, "forest", "wolf"),
		NewTestNpc(1, "forest"),
		NewTestNpc(2, "cave"),
	)

	ids, ok := s.TryLookupTag("forest")
	require.True(t, ok)
	assert.Equal(t, []int32{1, 3}, ids, "ids sorted")

	_, ok = s.TryLookupTag("desert")
	assert.False(t, ok)

	// Caller mutations must not leak into the index.
	ids[0] = 99
	again, _ := s.TryLookupTag("forest")
	assert.Equal(t, []int32{1, 3}, again)
}

func TestNpcMetadataStorage_AddReplacesTags(t *testing.T) {
	s := NewNpcMetadataStorage(NewTestNpc(1, "forest"))

	s.Add(NewTestNpc(1, "cave"))

	_, ok := s.TryLookupTag("forest")
	assert.False(t, ok, "old tag must be dropped")
	ids, ok := s.TryLookupTag("cave")
	require.True(t, ok)
	assert.Equal(t, []int32{1}, ids)
	assert.Equal(t, 1, s.Count())
}

func TestLoadNpcMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "npcs.yaml")
	content := `
npcs:
  - id: 21000001
    name: Wolf
    level: 10
    hp: 500
    tags: [forest, beast]
  - id: 21000002
    name: Bear
    tags: [forest]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadNpcMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())

	wolf, ok := s.TryGet(21000001)
	require.True(t, ok)
	assert.Equal(t, &model.NpcMetadata{
		ID:    21000001,
		Name:  "Wolf",
		Level: 10,
		HP:    500,
		Tags:  []string{"forest", "beast"},
	}, wolf)

	ids, ok := s.TryLookupTag("forest")
	require.True(t, ok)
	assert.Equal(t, []int32{21000001, 21000002}, ids)
}

func TestLoadNpcMetadata_MissingFile(t *testing.T) {
	_, err := LoadNpcMetadata(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNpcMetadataStorage_IDs(t *testing.T) {
	s := NewNpcMetadataStorage(NewTestNpc(2), NewTestNpc(1))
	assert.ElementsMatch(t, []int32{1, 2}, s.IDs())
}
