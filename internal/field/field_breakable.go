package field

import (
	"sync"
	"time"

	"github.com/udisondev/ms2go/internal/gameserver/serverpackets"
	"github.com/udisondev/ms2go/internal/model"
)

// FieldBreakable is a breakable prop placed on the field.
type FieldBreakable struct {
	fieldObject

	Value *model.BreakableActor

	stateMu  sync.Mutex
	state    serverpackets.BreakableState
	brokenAt time.Time
}

func newFieldBreakable(f *Field, objectID int32, value *model.BreakableActor) *FieldBreakable {
	return &FieldBreakable{
		fieldObject: newFieldObject(f, objectID, value.Position, value.Rotation),
		Value:       value,
		state:       serverpackets.BreakableIdle,
	}
}

// Kind returns KindBreakable.
func (b *FieldBreakable) Kind() Kind { return KindBreakable }

// State returns the current state.
func (b *FieldBreakable) State() serverpackets.BreakableState {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.state
}

// Break switches the breakable to broken. Returns false if already broken.
func (b *FieldBreakable) Break(now time.Time) bool {
	b.stateMu.Lock()
	if b.state == serverpackets.BreakableBroken {
		b.stateMu.Unlock()
		return false
	}
	b.state = serverpackets.BreakableBroken
	b.brokenAt = now
	b.stateMu.Unlock()

	b.field.broadcastPacket(b.update(serverpackets.BreakableBroken), nil)
	return true
}

func (b *FieldBreakable) update(state serverpackets.BreakableState) serverpackets.BreakableUpdate {
	return serverpackets.BreakableUpdate{
		EntityID: b.Value.EntityID,
		ObjectID: b.objectID,
		State:    state,
	}
}

func (b *FieldBreakable) sync(now time.Time) {
	if b.Value.ResetTime <= 0 {
		return
	}

	b.stateMu.Lock()
	reset := b.state == serverpackets.BreakableBroken &&
		now.Sub(b.brokenAt) >= time.Duration(b.Value.ResetTime)*time.Millisecond
	if reset {
		b.state = serverpackets.BreakableIdle
		b.brokenAt = time.Time{}
	}
	b.stateMu.Unlock()

	if reset {
		b.field.broadcastPacket(b.update(serverpackets.BreakableIdle), nil)
	}
}
