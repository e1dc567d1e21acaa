package clientpackets

import (
	"fmt"

	"github.com/udisondev/ms2go/internal/gameserver/packet"
)

// PickupItem requests an item lying on the field.
type PickupItem struct {
	ObjectID int32
}

// ParsePickupItem parses a PickupItem message (without opcode).
func ParsePickupItem(data []byte) (*PickupItem, error) {
	objectID, err := packet.NewReader(data).ReadInt()
	if err != nil {
		return nil, fmt.Errorf("reading object id: %w", err)
	}
	return &PickupItem{ObjectID: objectID}, nil
}
