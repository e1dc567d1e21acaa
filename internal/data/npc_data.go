package data

import (
	"slices"
	"sync"

	"github.com/udisondev/ms2go/internal/model"
)

// NpcMetadataStorage is the NPC catalog: templates by id plus a tag index.
// Safe for concurrent reads; Add may be called concurrently with lookups.
type NpcMetadataStorage struct {
	mu    sync.RWMutex
	byID  map[int32]*model.NpcMetadata
	byTag map[string][]int32 // tag → sorted npc ids
}

// NewNpcMetadataStorage builds a catalog from templates. Later duplicates
// replace earlier ones.
func NewNpcMetadataStorage(npcs ...*model.NpcMetadata) *NpcMetadataStorage {
	s := &NpcMetadataStorage{
		byID:  make(map[int32]*model.NpcMetadata, len(npcs)),
		byTag: make(map[string][]int32),
	}
	for _, npc := range npcs {
		s.addLocked(npc)
	}
	return s
}

// Add inserts or replaces a template.
func (s *NpcMetadataStorage) Add(npc *model.NpcMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(npc)
}

func (s *NpcMetadataStorage) addLocked(npc *model.NpcMetadata) {
	if old, ok := s.byID[npc.ID]; ok {
		for _, tag := range old.Tags {
			s.byTag[tag] = slices.DeleteFunc(s.byTag[tag], func(id int32) bool { return id == npc.ID })
			if len(s.byTag[tag]) == 0 {
				delete(s.byTag, tag)
			}
		}
	}

	s.byID[npc.ID] = npc
	for _, tag := range npc.Tags {
		ids := s.byTag[tag]
		if i, found := slices.BinarySearch(ids, npc.ID); !found {
			s.byTag[tag] = slices.Insert(ids, i, npc.ID)
		}
	}
}

// TryGet returns the template for npcID.
func (s *NpcMetadataStorage) TryGet(npcID int32) (*model.NpcMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	npc, ok := s.byID[npcID]
	return npc, ok
}

// TryLookupTag returns the ids of all templates carrying tag (a copy).
func (s *NpcMetadataStorage) TryLookupTag(tag string) ([]int32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.byTag[tag]
	if !ok {
		return nil, false
	}
	return slices.Clone(ids), true
}

// Count returns the number of templates.
func (s *NpcMetadataStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// IDs returns the ids of all templates (unordered).
func (s *NpcMetadataStorage) IDs() []int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int32, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	return ids
}
