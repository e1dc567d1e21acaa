package serverpackets

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ms2go/internal/gameserver/packet"
	"github.com/udisondev/ms2go/internal/model"
)

func TestFieldAddNpc_Write(t *testing.T) {
	data, err := FieldAddNpc{
		ObjectID: 50000001,
		NpcID:    21000001,
		Position: model.NewVector3(100, 200, 300),
	}.Write()
	require.NoError(t, err)

	r := packet.NewReader(data)
	op, err := r.ReadUShort()
	require.NoError(t, err)
	assert.Equal(t, OpcodeFieldAddNpc, op)

	objectID, _ := r.ReadInt()
	npcID, _ := r.ReadInt()
	pos, err := r.ReadVector3()
	require.NoError(t, err)

	assert.Equal(t, int32(50000001), objectID)
	assert.Equal(t, int32(21000001), npcID)
	assert.Equal(t, model.NewVector3(100, 200, 300), pos)
}

func TestFieldRemoveItem_Write(t *testing.T) {
	data, err := FieldRemoveItem{ObjectID: 42}.Write()
	require.NoError(t, err)
	require.Len(t, data, 6)

	r := packet.NewReader(data)
	op, _ := r.ReadUShort()
	id, _ := r.ReadInt()
	assert.Equal(t, OpcodeFieldRemoveItem, op)
	assert.Equal(t, int32(42), id)
}

func TestBreakableUpdate_Write(t *testing.T) {
	id := uuid.MustParse("0f2b43e1-8f9a-4a2c-9a50-6c1e7d2b9f00")
	data, err := BreakableUpdate{EntityID: id, ObjectID: 7, State: BreakableBroken}.Write()
	require.NoError(t, err)

	r := packet.NewReader(data)
	_, _ = r.ReadUShort()
	hex, err := r.ReadUnicodeString()
	require.NoError(t, err)
	assert.Equal(t, "0f2b43e18f9a4a2c9a506c1e7d2b9f00", hex)

	objectID, _ := r.ReadInt()
	state, _ := r.ReadByte()
	assert.Equal(t, int32(7), objectID)
	assert.Equal(t, byte(BreakableBroken), state)
}

func TestNotice_Write(t *testing.T) {
	data, err := Notice{Code: NoticePlayerNotFound, Args: []string{"Tester"}}.Write()
	require.NoError(t, err)

	r := packet.NewReader(data)
	op, _ := r.ReadUShort()
	code, _ := r.ReadInt()
	n, _ := r.ReadByte()
	arg, err := r.ReadUnicodeString()
	require.NoError(t, err)

	assert.Equal(t, OpcodeNotice, op)
	assert.Equal(t, int32(NoticePlayerNotFound), code)
	assert.Equal(t, byte(1), n)
	assert.Equal(t, "Tester", arg)
}
