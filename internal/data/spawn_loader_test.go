package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ms2go/internal/model"
)

const testMapYAML = `
id: 2000062
name: Lith Harbor
spawns:
  - id: 1
    population: 3
    cooldown: 30
    tags: [harbor_mob]
portals:
  - id: 10
    target_map_id: 2000001
    position: {x: 100, y: 200, z: 300}
    visible: true
    enabled: true
breakables:
  - entity_id: 0f2b43e18f9a4a2c9a506c1e7d2b9f00
    position: {x: 1, y: 2, z: 3}
    rotation: {x: 0, y: 0, z: 90}
    reset_time: 5000
npc_spawns:
  - id: 7
    position: {x: 10, y: 20, z: 30}
    npc_ids: [5001, 5002]
    npc_count: 3
    spawn_on_field_create: true
    regen_check_time: 1000
region_spawns:
  - id: 1
    position: {x: 500, y: 500, z: 0}
`

func writeZstd(t *testing.T, path string, content []byte) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write(content)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
}

func TestLoadMaps(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02000062.yaml"), []byte(testMapYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644))

	s, err := LoadMaps(dir)
	require.NoError(t, err)
	require.Equal(t, 1, s.Count())

	metadata, entities, ok := s.TryGet(2000062)
	require.True(t, ok)
	assert.Equal(t, "Lith Harbor", metadata.Name)
	require.Len(t, metadata.Spawns, 1)
	assert.Equal(t, []string{"harbor_mob"}, metadata.Spawns[0].Tags)

	require.Contains(t, entities.Portals, int32(10))
	assert.Equal(t, model.NewVector3(100, 200, 300), entities.Portals[10].Position)

	entityID := uuid.MustParse("0f2b43e1-8f9a-4a2c-9a50-6c1e7d2b9f00")
	require.Contains(t, entities.BreakableActors, entityID)
	assert.True(t, entities.BreakableActors[entityID].Placed())
	assert.Equal(t, int32(5000), entities.BreakableActors[entityID].ResetTime)

	require.Len(t, entities.NpcSpawns, 1)
	assert.Equal(t, []int32{5001, 5002}, entities.NpcSpawns[0].NpcIDs)
	assert.True(t, entities.NpcSpawns[0].SpawnOnFieldCreate)

	require.Contains(t, entities.RegionSpawns, int32(1))

	_, _, ok = s.TryGet(1)
	assert.False(t, ok)
}

func TestLoadMaps_Zstd(t *testing.T) {
	dir := t.TempDir()
	writeZstd(t, filepath.Join(dir, "02000062.yaml.zst"), []byte(testMapYAML))

	s, err := LoadMaps(dir)
	require.NoError(t, err)

	_, entities, ok := s.TryGet(2000062)
	require.True(t, ok)
	assert.Len(t, entities.Portals, 1)
}

func TestLoadMaps_BadEntityID(t *testing.T) {
	dir := t.TempDir()
	content := "id: 1\nbreakables:\n  - entity_id: not-a-uuid\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.yaml"), []byte(content), 0o644))

	_, err := LoadMaps(dir)
	assert.Error(t, err)
}

func TestLoadMaps_DuplicatePortal(t *testing.T) {
	dir := t.TempDir()
	content := "id: 1\nportals:\n  - id: 5\n  - id: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.yaml"), []byte(content), 0o644))

	_, err := LoadMaps(dir)
	assert.Error(t, err)
}

func TestLoadMaps_NullEntry(t *testing.T) {
	tests := []struct {
		name    string
		content string
		section string
	}{
		{"portal", "id: 1\nportals:\n  - null\n", "portals[0]"},
		{"npc spawn", "id: 1\nnpc_spawns:\n  - id: 7\n    npc_ids: [1]\n  - null\n", "npc_spawns[1]"},
		{"region spawn", "id: 1\nregion_spawns:\n  - null\n", "region_spawns[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "1.yaml"), []byte(tt.content), 0o644))

			var err error
			require.NotPanics(t, func() { _, err = LoadMaps(dir) })
			require.ErrorIs(t, err, ErrEmptyEntry)
			assert.Contains(t, err.Error(), "map 1")
			assert.Contains(t, err.Error(), tt.section)
		})
	}
}
