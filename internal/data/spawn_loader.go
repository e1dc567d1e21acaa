package data

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/udisondev/ms2go/internal/model"
)

// MapMetadataStorage holds the static level data of every known map.
// Entries are never mutated after being added.
type MapMetadataStorage struct {
	mu       sync.RWMutex
	maps     map[int32]*model.MapMetadata
	entities map[int32]*model.MapEntityMetadata
}

// NewMapMetadataStorage creates an empty storage.
func NewMapMetadataStorage() *MapMetadataStorage {
	return &MapMetadataStorage{
		maps:     make(map[int32]*model.MapMetadata, 64),
		entities: make(map[int32]*model.MapEntityMetadata, 64),
	}
}

// Add registers a map's level data.
func (s *MapMetadataStorage) Add(metadata *model.MapMetadata, entities *model.MapEntityMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps[metadata.ID] = metadata
	s.entities[metadata.ID] = entities
}

// TryGet returns the level data of mapID.
func (s *MapMetadataStorage) TryGet(mapID int32) (*model.MapMetadata, *model.MapEntityMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metadata, ok := s.maps[mapID]
	if !ok {
		return nil, nil, false
	}
	return metadata, s.entities[mapID], true
}

// Count returns the number of maps.
func (s *MapMetadataStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.maps)
}

// LoadMaps loads every *.yaml / *.yaml.zst file in dir, one map per file.
func LoadMaps(dir string) (*MapMetadataStorage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading map dir %s: %w", dir, err)
	}

	storage := NewMapMetadataStorage()
	for _, entry := range entries {
		if entry.IsDir() || !isDataFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		var file mapFile
		if err := decodeFile(path, &file); err != nil {
			return nil, fmt.Errorf("loading map: %w", err)
		}

		metadata, entities, err := file.toModel()
		if err != nil {
			return nil, fmt.Errorf("loading map %s: %w", path, err)
		}
		storage.Add(metadata, entities)
	}

	slog.Info("loaded map metadata", "count", storage.Count(), "dir", dir)
	return storage, nil
}
