package field

import (
	"sync/atomic"
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// Session is the outbound message channel of a connected player.
// Send must not block; implementations queue or drop.
type Session interface {
	Send(msg []byte) error
}

// FieldPlayer is a player avatar present in a field.
// Object ids of players are global (see NextGlobalID).
type FieldPlayer struct {
	fieldObject

	Session   Session
	Character *model.Character

	enteredAt time.Time
	lastSync  atomic.Int64 // unix nanos of the last tick that visited the player
}

func newFieldPlayer(f *Field, objectID int32, session Session, character *model.Character, now time.Time) *FieldPlayer {
	return &FieldPlayer{
		fieldObject: newFieldObject(f, objectID, character.Position, model.Vector3{}),
		Session:     session,
		Character:   character,
		enteredAt:   now,
	}
}

// Kind returns KindPlayer.
func (p *FieldPlayer) Kind() Kind { return KindPlayer }

// CharacterID returns the persistent character id.
func (p *FieldPlayer) CharacterID() int64 { return p.Character.ID }

// EnteredAt returns when the player entered the field.
func (p *FieldPlayer) EnteredAt() time.Time { return p.enteredAt }

// LastSync returns the time of the last tick that visited the player
// (zero if none yet).
func (p *FieldPlayer) LastSync() time.Time {
	n := p.lastSync.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func (p *FieldPlayer) sync(now time.Time) {
	p.lastSync.Store(now.UnixNano())
}
