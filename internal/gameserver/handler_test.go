package gameserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitOpcode(t *testing.T) {
	opcode, payload, err := splitOpcode([]byte{0x04, 0x00, 0xAA})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0004), opcode)
	assert.Equal(t, []byte{0xAA}, payload)

	for _, msg := range [][]byte{nil, {0x01}} {
		_, _, err := splitOpcode(msg)
		assert.ErrorIs(t, err, ErrShortPacket)
	}
}

func TestHandler_ShortPacket(t *testing.T) {
	h := NewHandler()

	err := h.HandlePacket(nil, nil, []byte{0x02})
	require.ErrorIs(t, err, ErrShortPacket)
	assert.NotErrorIs(t, err, ErrBadHandshake, "in-field messages are past the handshake")
}

func TestHandler_UnknownOpcode(t *testing.T) {
	h := NewHandler()

	err := h.HandlePacket(nil, nil, []byte{0xFF, 0x7F})
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}
