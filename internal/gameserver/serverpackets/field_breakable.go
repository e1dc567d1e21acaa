package serverpackets

import (
	"strings"

	"github.com/google/uuid"

	"github.com/udisondev/ms2go/internal/gameserver/packet"
)

// BreakableState is the visible state of a breakable actor.
type BreakableState byte

const (
	BreakableIdle BreakableState = iota
	BreakableBroken
)

// BreakableUpdate reports a breakable actor's state change.
type BreakableUpdate struct {
	EntityID uuid.UUID
	ObjectID int32
	State    BreakableState
}

// Write serializes BreakableUpdate. The entity id is written as its
// 32-char hex form.
func (p BreakableUpdate) Write() ([]byte, error) {
	w := packet.Of(OpcodeBreakable, 48)
	w.WriteUnicodeString(hexEntityID(p.EntityID))
	w.WriteInt(p.ObjectID)
	_ = w.WriteByte(byte(p.State))
	return w.Bytes(), nil
}

func hexEntityID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
