package field

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/udisondev/ms2go/internal/gameserver/serverpackets"
	"github.com/udisondev/ms2go/internal/model"
)

// init populates the field from static level data. Each step is isolated:
// a failing step is logged and the next one still runs.
func (f *Field) init() {
	f.bringUp("portals", f.spawnPortals)
	f.bringUp("breakables", f.spawnBreakables)
	f.bringUp("npc spawn points", f.spawnNpcPoints)
	f.bringUp("mob spawns", f.spawnMobGroups)
}

func (f *Field) bringUp(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("field bring-up step failed", "step", step, "error", r)
		}
	}()
	fn()
}

func (f *Field) spawnPortals() {
	for _, id := range slices.Sorted(maps.Keys(f.entities.Portals)) {
		f.SpawnPortal(f.entities.Portals[id])
	}
}

// Breakables without a placement are positioned later by gameplay logic.
func (f *Field) spawnBreakables() {
	ids := slices.SortedFunc(maps.Keys(f.entities.BreakableActors), func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	for _, id := range ids {
		breakable := f.entities.BreakableActors[id]
		if breakable.Placed() {
			f.AddBreakable(breakable)
		}
	}
}

func (f *Field) spawnNpcPoints() {
	for _, spawnPoint := range f.entities.NpcSpawns {
		if spawnPoint.RegenCheckTime > 0 {
			f.npcSpawns = append(f.npcSpawns, spawnPoint)
		}
		if spawnPoint.SpawnOnFieldCreate {
			f.spawnOnCreate(spawnPoint)
		}
	}
}

// spawnOnCreate spawns NpcCount NPCs of the spawn point's FIRST candidate id.
// Other candidate ids are never used here.
// TODO: pick among all NpcIDs once the selection rule for multi-id spawn points is known.
func (f *Field) spawnOnCreate(spawnPoint *model.SpawnPointNPC) {
	if len(spawnPoint.NpcIDs) == 0 {
		f.log.Warn("spawn point has no npc ids", "spawnPointID", spawnPoint.ID)
		return
	}

	npcID := spawnPoint.NpcIDs[0]
	npc, ok := f.npcMetadata.TryGet(npcID)
	if !ok {
		f.log.Warn("npc failed to load for map", "npcID", npcID, "mapID", f.MapID())
		return
	}

	for range spawnPoint.NpcCount {
		f.SpawnNpc(npc, spawnPoint.Position, spawnPoint.Rotation)
	}
}

func (f *Field) spawnMobGroups() {
	for _, spawn := range f.metadata.Spawns {
		region, ok := f.entities.RegionSpawns[spawn.ID]
		if !ok {
			continue
		}

		npcIDs := make(map[int32]struct{})
		for _, tag := range spawn.Tags {
			tagNpcIDs, ok := f.npcMetadata.TryLookupTag(tag)
			if !ok {
				continue
			}
			for _, id := range tagNpcIDs {
				npcIDs[id] = struct{}{}
			}
		}

		if len(npcIDs) > 0 && spawn.Population > 0 {
			f.AddMobSpawn(spawn, region, slices.Sorted(maps.Keys(npcIDs)))
		}
	}
}

// SpawnPortal registers a portal entity at its defined placement.
// Returns nil if the entity could not be registered or a portal with the
// same static id is already on the field.
func (f *Field) SpawnPortal(portal *model.Portal) *FieldPortal {
	fieldPortal := newFieldPortal(f, f.NextLocalID(), portal)
	if !f.portalIDs.Add(portal.ID, fieldPortal) {
		f.log.Warn("portal already spawned", "portalID", portal.ID)
		return nil
	}
	if !f.registered(f.portals.Add(fieldPortal.objectID, fieldPortal), fieldPortal) {
		f.portalIDs.Remove(portal.ID)
		return nil
	}
	return fieldPortal
}

// AddBreakable registers a breakable actor at its placement.
func (f *Field) AddBreakable(breakable *model.BreakableActor) *FieldBreakable {
	fieldBreakable := newFieldBreakable(f, f.NextLocalID(), breakable)
	if !f.registered(f.breakables.Add(fieldBreakable.objectID, fieldBreakable), fieldBreakable) {
		return nil
	}
	return fieldBreakable
}

// SpawnNpc creates an NPC from a template and announces it to the field.
func (f *Field) SpawnNpc(npc *model.NpcMetadata, position, rotation model.Vector3) *FieldNpc {
	return f.spawnNpc(npc, position, rotation, nil)
}

func (f *Field) spawnNpc(npc *model.NpcMetadata, position, rotation model.Vector3, owner *FieldMobSpawn) *FieldNpc {
	fieldNpc := newFieldNpc(f, f.NextLocalID(), npc, position, rotation, owner)
	if owner != nil {
		owner.track(fieldNpc.objectID)
	}
	if !f.registered(f.npcs.Add(fieldNpc.objectID, fieldNpc), fieldNpc) {
		if owner != nil {
			owner.release(fieldNpc.objectID, f.now())
		}
		return nil
	}

	f.broadcastPacket(serverpackets.FieldAddNpc{
		ObjectID: fieldNpc.objectID,
		NpcID:    npc.ID,
		Position: position,
		Rotation: rotation,
	}, nil)

	return fieldNpc
}

// AddMobSpawn registers a spawn group for a region spawn definition.
func (f *Field) AddMobSpawn(spawn model.MapSpawn, region *model.RegionSpawn, npcIDs []int32) *FieldMobSpawn {
	mobSpawn := newFieldMobSpawn(f, f.NextLocalID(), spawn, region, npcIDs)
	if !f.registered(f.mobSpawns.Add(mobSpawn.objectID, mobSpawn), mobSpawn) {
		return nil
	}
	return mobSpawn
}

// RemoveNpc removes an NPC and notifies its spawn group.
func (f *Field) RemoveNpc(objectID int32) bool {
	npc, ok := f.npcs.Remove(objectID)
	if !ok {
		return false
	}
	if npc.owner != nil {
		npc.owner.release(objectID, f.now())
	}

	f.broadcastPacket(serverpackets.FieldRemoveNpc{ObjectID: objectID}, nil)
	return true
}

// registered logs a failed registry insert. Allocators never reuse ids, so
// a collision means the allocator or registry is broken; only the current
// operation is abandoned.
func (f *Field) registered(added bool, a Actor) bool {
	if !added {
		f.log.Error("object id already registered",
			"kind", a.Kind(),
			"objectID", a.ObjectID(),
			"error", ErrDuplicateObjectID)
	}
	return added
}
