package serverpackets

import (
	"github.com/udisondev/ms2go/internal/gameserver/packet"
	"github.com/udisondev/ms2go/internal/model"
)

// FieldAddItem announces an item dropped on the field.
type FieldAddItem struct {
	ObjectID int32
	ItemID   int32
	Amount   int32
	Rarity   int16
	Position model.Vector3
	OwnerID  int32 // object id of the dropper, 0 for world drops
}

// Write serializes FieldAddItem.
func (p FieldAddItem) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldAddItem, 40)
	w.WriteInt(p.ObjectID)
	w.WriteInt(p.ItemID)
	w.WriteInt(p.Amount)
	w.WriteShort(p.Rarity)
	w.WriteVector3(p.Position)
	w.WriteInt(p.OwnerID)
	return w.Bytes(), nil
}

// FieldRemoveItem removes an item from the field (expired or picked up).
type FieldRemoveItem struct {
	ObjectID int32
}

// Write serializes FieldRemoveItem.
func (p FieldRemoveItem) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldRemoveItem, 4)
	w.WriteInt(p.ObjectID)
	return w.Bytes(), nil
}
