package field

import (
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// FieldPortal is a portal placed from static level data.
// Portals carry no per-tick state and are not visited by the tick loop.
type FieldPortal struct {
	fieldObject

	Value *model.Portal
}

func newFieldPortal(f *Field, objectID int32, value *model.Portal) *FieldPortal {
	return &FieldPortal{
		fieldObject: newFieldObject(f, objectID, value.Position, value.Rotation),
		Value:       value,
	}
}

// Kind returns KindPortal.
func (p *FieldPortal) Kind() Kind { return KindPortal }

func (p *FieldPortal) sync(time.Time) {}
