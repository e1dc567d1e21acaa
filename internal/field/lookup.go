package field

import (
	"github.com/google/uuid"

	"github.com/udisondev/ms2go/internal/model"
)

// TryGetPlayer returns a player by object id.
func (f *Field) TryGetPlayer(objectID int32) (*FieldPlayer, bool) {
	return f.players.Get(objectID)
}

// TryGetPlayerByID returns a player by persistent character id.
// Linear scan over the players of this field.
func (f *Field) TryGetPlayerByID(characterID int64) (*FieldPlayer, bool) {
	return f.players.Find(func(p *FieldPlayer) bool {
		return p.Character.ID == characterID
	})
}

// TryGetNpc returns an NPC by object id.
func (f *Field) TryGetNpc(objectID int32) (*FieldNpc, bool) {
	return f.npcs.Get(objectID)
}

// TryGetPortal returns a portal by object id.
func (f *Field) TryGetPortal(objectID int32) (*FieldPortal, bool) {
	return f.portals.Get(objectID)
}

// TryGetPortalByID returns the spawned portal with the given static portal id.
func (f *Field) TryGetPortalByID(portalID int32) (*FieldPortal, bool) {
	return f.portalIDs.Get(portalID)
}

// TryGetPortalMetadata returns a portal definition from the map's static
// level data, spawned or not.
func (f *Field) TryGetPortalMetadata(portalID int32) (*model.Portal, bool) {
	portal, ok := f.entities.Portals[portalID]
	return portal, ok
}

// TryGetItem returns a field item by object id.
func (f *Field) TryGetItem(objectID int32) (*FieldItem, bool) {
	return f.items.Get(objectID)
}

// TryGetBreakable returns a breakable by object id.
func (f *Field) TryGetBreakable(objectID int32) (*FieldBreakable, bool) {
	return f.breakables.Get(objectID)
}

// TryGetBreakableByEntity returns a breakable by its level-data entity id.
func (f *Field) TryGetBreakableByEntity(entityID uuid.UUID) (*FieldBreakable, bool) {
	return f.breakables.Find(func(b *FieldBreakable) bool {
		return b.Value.EntityID == entityID
	})
}

// TryGetMobSpawn returns a spawn group by object id.
func (f *Field) TryGetMobSpawn(objectID int32) (*FieldMobSpawn, bool) {
	return f.mobSpawns.Get(objectID)
}

// Players returns a snapshot of the players in the field.
func (f *Field) Players() []*FieldPlayer { return f.players.Values() }

// Npcs returns a snapshot of the NPCs in the field.
func (f *Field) Npcs() []*FieldNpc { return f.npcs.Values() }

// Portals returns a snapshot of the portals in the field.
func (f *Field) Portals() []*FieldPortal { return f.portals.Values() }

// Items returns a snapshot of the items on the field.
func (f *Field) Items() []*FieldItem { return f.items.Values() }

// Breakables returns a snapshot of the breakables in the field.
func (f *Field) Breakables() []*FieldBreakable { return f.breakables.Values() }

// MobSpawns returns a snapshot of the spawn groups in the field.
func (f *Field) MobSpawns() []*FieldMobSpawn { return f.mobSpawns.Values() }

// PlayerCount returns the number of players (O(1)).
func (f *Field) PlayerCount() int { return f.players.Len() }

// NpcCount returns the number of NPCs (O(1)).
func (f *Field) NpcCount() int { return f.npcs.Len() }

// Broadcast delivers msg to every player session in the field except sender
// (nil = no exclusion). Best-effort: send errors are logged and skipped, and
// a player leaving concurrently may or may not receive the message.
func (f *Field) Broadcast(msg []byte, sender Session) int {
	sent := 0
	f.players.Range(func(_ int32, p *FieldPlayer) bool {
		if sender != nil && p.Session == sender {
			return true
		}
		if err := p.Session.Send(msg); err != nil {
			f.log.Debug("broadcast to player failed",
				"objectID", p.objectID,
				"error", err)
			return true
		}
		sent++
		return true
	})
	return sent
}
