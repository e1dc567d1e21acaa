package serverpackets

import (
	"github.com/udisondev/ms2go/internal/gameserver/packet"
	"github.com/udisondev/ms2go/internal/model"
)

// FieldAddPortal describes a portal to a client entering the field.
type FieldAddPortal struct {
	ObjectID    int32
	PortalID    int32
	TargetMapID int32
	Position    model.Vector3
	Rotation    model.Vector3
	Visible     bool
	Enabled     bool
}

// Write serializes FieldAddPortal.
func (p FieldAddPortal) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldPortal, 40)
	w.WriteInt(p.ObjectID)
	w.WriteInt(p.PortalID)
	w.WriteInt(p.TargetMapID)
	w.WriteVector3(p.Position)
	w.WriteVector3(p.Rotation)
	w.WriteBool(p.Visible)
	w.WriteBool(p.Enabled)
	return w.Bytes(), nil
}
