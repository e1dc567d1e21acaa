package serverpackets

import (
	"github.com/udisondev/ms2go/internal/gameserver/packet"
	"github.com/udisondev/ms2go/internal/model"
)

// FieldAddNpc announces a spawned NPC.
type FieldAddNpc struct {
	ObjectID int32
	NpcID    int32
	Position model.Vector3
	Rotation model.Vector3
}

// Write serializes FieldAddNpc.
func (p FieldAddNpc) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldAddNpc, 32)
	w.WriteInt(p.ObjectID)
	w.WriteInt(p.NpcID)
	w.WriteVector3(p.Position)
	w.WriteVector3(p.Rotation)
	return w.Bytes(), nil
}

// FieldRemoveNpc removes a despawned NPC.
type FieldRemoveNpc struct {
	ObjectID int32
}

// Write serializes FieldRemoveNpc.
func (p FieldRemoveNpc) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldRemoveNpc, 4)
	w.WriteInt(p.ObjectID)
	return w.Bytes(), nil
}
