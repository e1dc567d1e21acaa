package field

import (
	"sync/atomic"
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// FieldNpc is a live NPC spawned from a template.
type FieldNpc struct {
	fieldObject

	Value *model.NpcMetadata

	// owner is the spawn group that produced this NPC, nil for spawn point NPCs.
	owner *FieldMobSpawn

	diedAt atomic.Pointer[time.Time] // nil while alive
}

func newFieldNpc(f *Field, objectID int32, value *model.NpcMetadata, position, rotation model.Vector3, owner *FieldMobSpawn) *FieldNpc {
	return &FieldNpc{
		fieldObject: newFieldObject(f, objectID, position, rotation),
		Value:       value,
		owner:       owner,
	}
}

// Kind returns KindNpc.
func (n *FieldNpc) Kind() Kind { return KindNpc }

// Owner returns the spawn group that owns the NPC (nil if none).
func (n *FieldNpc) Owner() *FieldMobSpawn { return n.owner }

// Kill marks the NPC dead at now. Returns false if it already was.
// The corpse is removed by the tick loop after the template's CorpseTime.
func (n *FieldNpc) Kill(now time.Time) bool {
	return n.diedAt.CompareAndSwap(nil, &now)
}

// IsDead reports whether Kill was called.
func (n *FieldNpc) IsDead() bool {
	return n.diedAt.Load() != nil
}

func (n *FieldNpc) sync(now time.Time) {
	diedAt := n.diedAt.Load()
	if diedAt == nil {
		return
	}

	corpse := time.Duration(n.Value.CorpseTime) * time.Millisecond
	if now.Sub(*diedAt) >= corpse {
		n.field.RemoveNpc(n.objectID)
	}
}
