package serverpackets

import (
	"github.com/udisondev/ms2go/internal/gameserver/packet"
	"github.com/udisondev/ms2go/internal/model"
)

// FieldAddUser announces a player avatar to the other players of a field.
type FieldAddUser struct {
	ObjectID    int32
	CharacterID int64
	Name        string
	Level       int16
	Position    model.Vector3
	Rotation    model.Vector3
}

// Write serializes FieldAddUser.
func (p FieldAddUser) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldAddUser, 64)
	w.WriteInt(p.ObjectID)
	w.WriteLong(p.CharacterID)
	w.WriteUnicodeString(p.Name)
	w.WriteShort(p.Level)
	w.WriteVector3(p.Position)
	w.WriteVector3(p.Rotation)
	return w.Bytes(), nil
}

// FieldRemoveUser removes a player avatar from clients' view.
type FieldRemoveUser struct {
	ObjectID int32
}

// Write serializes FieldRemoveUser.
func (p FieldRemoveUser) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldRemoveUser, 4)
	w.WriteInt(p.ObjectID)
	return w.Bytes(), nil
}

// FieldEntered confirms to the entering client which field instance it joined.
type FieldEntered struct {
	MapID      int32
	InstanceID int32
	ObjectID   int32
	Position   model.Vector3
}

// Write serializes FieldEntered.
func (p FieldEntered) Write() ([]byte, error) {
	w := packet.Of(OpcodeFieldEntered, 24)
	w.WriteInt(p.MapID)
	w.WriteInt(p.InstanceID)
	w.WriteInt(p.ObjectID)
	w.WriteVector3(p.Position)
	return w.Bytes(), nil
}
