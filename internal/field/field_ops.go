package field

import (
	"github.com/udisondev/ms2go/internal/gameserver/serverpackets"
	"github.com/udisondev/ms2go/internal/model"
)

// AddPlayer places a character into the field under a new global object id,
// announces it to the other players and sends the current field contents to
// the entering session.
func (f *Field) AddPlayer(session Session, character *model.Character) (*FieldPlayer, error) {
	if session == nil {
		return nil, ErrNilSession
	}
	if character == nil {
		return nil, ErrNilCharacter
	}
	if f.disposed.Load() {
		return nil, ErrFieldDisposed
	}

	player := newFieldPlayer(f, f.NextGlobalID(), session, character, f.now())
	if !f.registered(f.players.Add(player.objectID, player), player) {
		return nil, ErrDuplicateObjectID
	}

	f.sendPacket(session, serverpackets.FieldEntered{
		MapID:      f.MapID(),
		InstanceID: f.instanceID,
		ObjectID:   player.objectID,
		Position:   player.Position(),
	})
	f.sendSnapshot(player)
	f.broadcastPacket(fieldAddUser(player), session)

	f.log.Info("player entered field",
		"objectID", player.objectID,
		"characterID", character.ID,
		"name", character.Name)

	return player, nil
}

// RemovePlayer removes a player and announces the removal.
func (f *Field) RemovePlayer(objectID int32) (*FieldPlayer, bool) {
	player, ok := f.players.Remove(objectID)
	if !ok {
		return nil, false
	}

	f.broadcastPacket(serverpackets.FieldRemoveUser{ObjectID: objectID}, nil)

	f.log.Info("player left field",
		"objectID", objectID,
		"characterID", player.Character.ID)

	return player, true
}

// DropItem places an item stack on the field. ownerID is the dropper's
// object id (0 for world drops).
func (f *Field) DropItem(item *model.Item, position model.Vector3, ownerID int32) *FieldItem {
	fieldItem := newFieldItem(f, f.NextLocalID(), item, position, ownerID, f.now(), f.itemLifetime)
	if !f.registered(f.items.Add(fieldItem.objectID, fieldItem), fieldItem) {
		return nil
	}

	f.broadcastPacket(serverpackets.FieldAddItem{
		ObjectID: fieldItem.objectID,
		ItemID:   item.ItemID,
		Amount:   item.Amount,
		Rarity:   item.Rarity,
		Position: position,
		OwnerID:  ownerID,
	}, nil)

	return fieldItem
}

// PickupItem removes an item from the field. Only one concurrent caller can
// win a given item.
func (f *Field) PickupItem(objectID int32) (*FieldItem, bool) {
	return f.removeItem(objectID, "picked up")
}

func (f *Field) removeItem(objectID int32, reason string) (*FieldItem, bool) {
	item, ok := f.items.Remove(objectID)
	if !ok {
		return nil, false
	}

	f.broadcastPacket(serverpackets.FieldRemoveItem{ObjectID: objectID}, nil)

	f.log.Debug("field item removed",
		"objectID", objectID,
		"itemID", item.Value.ItemID,
		"reason", reason)

	return item, true
}

func fieldAddUser(p *FieldPlayer) serverpackets.FieldAddUser {
	return serverpackets.FieldAddUser{
		ObjectID:    p.objectID,
		CharacterID: p.Character.ID,
		Name:        p.Character.Name,
		Level:       p.Character.Level,
		Position:    p.Position(),
		Rotation:    p.Rotation(),
	}
}

// sendSnapshot sends everything currently visible in the field to a player
// that just entered.
func (f *Field) sendSnapshot(player *FieldPlayer) {
	session := player.Session

	f.portals.Range(func(_ int32, p *FieldPortal) bool {
		f.sendPacket(session, serverpackets.FieldAddPortal{
			ObjectID:    p.objectID,
			PortalID:    p.Value.ID,
			TargetMapID: p.Value.TargetMapID,
			Position:    p.Position(),
			Rotation:    p.Rotation(),
			Visible:     p.Value.Visible,
			Enabled:     p.Value.Enabled,
		})
		return true
	})
	f.players.Range(func(id int32, other *FieldPlayer) bool {
		if id != player.objectID {
			f.sendPacket(session, fieldAddUser(other))
		}
		return true
	})
	f.npcs.Range(func(_ int32, n *FieldNpc) bool {
		f.sendPacket(session, serverpackets.FieldAddNpc{
			ObjectID: n.objectID,
			NpcID:    n.Value.ID,
			Position: n.Position(),
			Rotation: n.Rotation(),
		})
		return true
	})
	f.items.Range(func(_ int32, i *FieldItem) bool {
		f.sendPacket(session, serverpackets.FieldAddItem{
			ObjectID: i.objectID,
			ItemID:   i.Value.ItemID,
			Amount:   i.Value.Amount,
			Rarity:   i.Value.Rarity,
			Position: i.Position(),
			OwnerID:  i.ownerID,
		})
		return true
	})
}

type writable interface {
	Write() ([]byte, error)
}

func (f *Field) sendPacket(session Session, p writable) {
	msg, err := p.Write()
	if err != nil {
		f.log.Error("failed to serialize packet", "error", err)
		return
	}
	if err := session.Send(msg); err != nil {
		f.log.Debug("send to session failed", "error", err)
	}
}

func (f *Field) broadcastPacket(p writable, sender Session) {
	msg, err := p.Write()
	if err != nil {
		f.log.Error("failed to serialize packet", "error", err)
		return
	}
	f.Broadcast(msg, sender)
}
