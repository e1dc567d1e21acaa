package clientpackets

import (
	"fmt"

	"github.com/udisondev/ms2go/internal/gameserver/packet"
)

// EnterField is the first message of a connection: the character to play
// and the instance of its map to join (0 = shared instance).
//
// Structure:
//   - int64: character id
//   - int32: instance id
type EnterField struct {
	CharacterID int64
	InstanceID  int32
}

// ParseEnterField parses an EnterField message (without opcode).
func ParseEnterField(data []byte) (*EnterField, error) {
	r := packet.NewReader(data)

	characterID, err := r.ReadLong()
	if err != nil {
		return nil, fmt.Errorf("reading character id: %w", err)
	}
	instanceID, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading instance id: %w", err)
	}

	return &EnterField{CharacterID: characterID, InstanceID: instanceID}, nil
}
