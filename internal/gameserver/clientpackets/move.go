package clientpackets

import (
	"fmt"

	"github.com/udisondev/ms2go/internal/gameserver/packet"
	"github.com/udisondev/ms2go/internal/model"
)

// Move reports the player's new placement.
type Move struct {
	Position model.Vector3
	Rotation model.Vector3
}

// ParseMove parses a Move message (without opcode).
func ParseMove(data []byte) (*Move, error) {
	r := packet.NewReader(data)

	position, err := r.ReadVector3()
	if err != nil {
		return nil, fmt.Errorf("reading position: %w", err)
	}
	rotation, err := r.ReadVector3()
	if err != nil {
		return nil, fmt.Errorf("reading rotation: %w", err)
	}
	return &Move{Position: position, Rotation: rotation}, nil
}
