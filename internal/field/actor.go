package field

import (
	"sync"
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// Kind identifies an entity variant. Ticked kinds are declared in tick order.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindNpc
	KindBreakable
	KindItem
	KindMobSpawn
	KindPortal
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNpc:
		return "npc"
	case KindBreakable:
		return "breakable"
	case KindItem:
		return "item"
	case KindMobSpawn:
		return "mob_spawn"
	case KindPortal:
		return "portal"
	default:
		return "unknown"
	}
}

// Actor is an entity owned by a Field. The set of implementations is closed:
// FieldPlayer, FieldNpc, FieldBreakable, FieldItem, FieldMobSpawn, FieldPortal.
type Actor interface {
	ObjectID() int32
	Kind() Kind
	Position() model.Vector3
	Rotation() model.Vector3

	// sync advances the actor by one tick. Called only from the tick loop.
	sync(now time.Time)
}

// fieldObject is the placement shared by every actor.
type fieldObject struct {
	field    *Field
	objectID int32

	mu       sync.RWMutex
	position model.Vector3
	rotation model.Vector3
}

func newFieldObject(f *Field, objectID int32, position, rotation model.Vector3) fieldObject {
	return fieldObject{
		field:    f,
		objectID: objectID,
		position: position,
		rotation: rotation,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (o *fieldObject) ObjectID() int32 {
	return o.objectID
}

// Field returns the owning field.
func (o *fieldObject) Field() *Field {
	return o.field
}

// Position returns the current position.
func (o *fieldObject) Position() model.Vector3 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.position
}

// Rotation returns the current rotation.
func (o *fieldObject) Rotation() model.Vector3 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rotation
}

// SetPosition moves the object.
func (o *fieldObject) SetPosition(position model.Vector3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = position
}

// SetRotation turns the object.
func (o *fieldObject) SetRotation(rotation model.Vector3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotation = rotation
}
