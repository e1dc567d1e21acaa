package gameserver

import (
	"fmt"
	"time"

	"github.com/udisondev/ms2go/internal/field"
	"github.com/udisondev/ms2go/internal/gameserver/clientpackets"
)

// Handler dispatches in-field client messages.
type Handler struct {
	now func() time.Time
}

// NewHandler creates a message handler.
func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// HandlePacket decodes one client message and applies it to the field.
func (h *Handler) HandlePacket(f *field.Field, player *field.FieldPlayer, msg []byte) error {
	opcode, payload, err := splitOpcode(msg)
	if err != nil {
		return err
	}

	switch opcode {
	case clientpackets.OpcodePickupItem:
		return h.handlePickupItem(f, payload)
	case clientpackets.OpcodeBreakBreakable:
		return h.handleBreakBreakable(f, payload)
	case clientpackets.OpcodeMove:
		return h.handleMove(player, payload)
	default:
		return fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, opcode)
	}
}

func (h *Handler) handlePickupItem(f *field.Field, data []byte) error {
	pkt, err := clientpackets.ParsePickupItem(data)
	if err != nil {
		return fmt.Errorf("parsing PickupItem: %w", err)
	}
	// Losing a pickup race is not an error.
	f.PickupItem(pkt.ObjectID)
	return nil
}

func (h *Handler) handleBreakBreakable(f *field.Field, data []byte) error {
	pkt, err := clientpackets.ParseBreakBreakable(data)
	if err != nil {
		return fmt.Errorf("parsing BreakBreakable: %w", err)
	}
	breakable, ok := f.TryGetBreakable(pkt.ObjectID)
	if !ok {
		return fmt.Errorf("breakable %d not found", pkt.ObjectID)
	}
	breakable.Break(h.now())
	return nil
}

func (h *Handler) handleMove(player *field.FieldPlayer, data []byte) error {
	pkt, err := clientpackets.ParseMove(data)
	if err != nil {
		return fmt.Errorf("parsing Move: %w", err)
	}
	player.SetPosition(pkt.Position)
	player.SetRotation(pkt.Rotation)
	return nil
}
