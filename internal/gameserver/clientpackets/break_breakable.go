package clientpackets

import (
	"fmt"

	"github.com/udisondev/ms2go/internal/gameserver/packet"
)

// BreakBreakable reports a hit that breaks a breakable prop.
type BreakBreakable struct {
	ObjectID int32
}

// ParseBreakBreakable parses a BreakBreakable message (without opcode).
func ParseBreakBreakable(data []byte) (*BreakBreakable, error) {
	objectID, err := packet.NewReader(data).ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading object id: %w", err)
	}
	return &BreakBreakable{ObjectID: objectID}, nil
}
