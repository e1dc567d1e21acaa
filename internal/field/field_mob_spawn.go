package field

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// FieldMobSpawn tracks the live population of a tag-based region spawn and
// tops it up from its candidate NPC ids once the regen cooldown has passed.
type FieldMobSpawn struct {
	fieldObject

	Value  model.MapSpawn
	Region *model.RegionSpawn
	npcIDs []int32 // candidate template ids, sorted

	mu        sync.Mutex
	spawned   map[int32]struct{} // object ids of live NPCs
	nextRegen time.Time
}

func newFieldMobSpawn(f *Field, objectID int32, value model.MapSpawn, region *model.RegionSpawn, npcIDs []int32) *FieldMobSpawn {
	return &FieldMobSpawn{
		fieldObject: newFieldObject(f, objectID, region.Position, region.Rotation),
		Value:       value,
		Region:      region,
		npcIDs:      npcIDs,
		spawned:     make(map[int32]struct{}, value.Population),
	}
}

// Kind returns KindMobSpawn.
func (s *FieldMobSpawn) Kind() Kind { return KindMobSpawn }

// NpcIDs returns a copy of the candidate template ids.
func (s *FieldMobSpawn) NpcIDs() []int32 {
	out := make([]int32, len(s.npcIDs))
	copy(out, s.npcIDs)
	return out
}

// Alive returns the number of live NPCs owned by the group.
func (s *FieldMobSpawn) Alive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spawned)
}

// track records a live NPC. Called before the NPC becomes visible in the
// registry so that a racing release always finds it.
func (s *FieldMobSpawn) track(objectID int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawned[objectID] = struct{}{}
}

// release forgets a despawned NPC and starts the regen cooldown.
func (s *FieldMobSpawn) release(objectID int32, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spawned[objectID]; !ok {
		return
	}
	delete(s.spawned, objectID)
	if s.nextRegen.Before(now) {
		s.nextRegen = now.Add(s.cooldown())
	}
}

func (s *FieldMobSpawn) cooldown() time.Duration {
	return time.Duration(s.Value.Cooldown) * time.Second
}

func (s *FieldMobSpawn) sync(now time.Time) {
	s.mu.Lock()
	missing := int(s.Value.Population) - len(s.spawned)
	if missing <= 0 || now.Before(s.nextRegen) {
		s.mu.Unlock()
		return
	}
	s.nextRegen = now.Add(s.cooldown())
	s.mu.Unlock()

	for range missing {
		npcID := s.npcIDs[rand.IntN(len(s.npcIDs))]
		metadata, ok := s.field.npcMetadata.TryGet(npcID)
		if !ok {
			s.field.log.Warn("mob spawn npc not found",
				"npcID", npcID,
				"spawnID", s.Value.ID)
			continue
		}

		s.field.spawnNpc(metadata, s.Region.Position, s.Region.Rotation, s)
	}
}
