package field

import (
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// FieldItem is an item stack lying on the field.
type FieldItem struct {
	fieldObject

	Value   *model.Item
	ownerID int32 // object id of the dropper, 0 for world drops

	droppedAt time.Time
	expiresAt time.Time // zero = never expires
}

func newFieldItem(f *Field, objectID int32, value *model.Item, position model.Vector3, ownerID int32, now time.Time, lifetime time.Duration) *FieldItem {
	item := &FieldItem{
		fieldObject: newFieldObject(f, objectID, position, model.Vector3{}),
		Value:       value,
		ownerID:     ownerID,
		droppedAt:   now,
	}
	if lifetime > 0 {
		item.expiresAt = now.Add(lifetime)
	}
	return item
}

// Kind returns KindItem.
func (i *FieldItem) Kind() Kind { return KindItem }

// OwnerID returns the dropper's object id (0 for world drops).
func (i *FieldItem) OwnerID() int32 { return i.ownerID }

// DroppedAt returns when the item was dropped.
func (i *FieldItem) DroppedAt() time.Time { return i.droppedAt }

// ExpiresAt returns when the item despawns (zero = never).
func (i *FieldItem) ExpiresAt() time.Time { return i.expiresAt }

func (i *FieldItem) sync(now time.Time) {
	if i.expiresAt.IsZero() || now.Before(i.expiresAt) {
		return
	}
	i.field.removeItem(i.objectID, "expired")
}
