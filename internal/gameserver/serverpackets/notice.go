package serverpackets

import "github.com/udisondev/ms2go/internal/gameserver/packet"

// NoticeCode identifies a client-side notice string.
type NoticeCode int32

const (
	NoticePlayerNotFound NoticeCode = 1
	NoticeFieldFull      NoticeCode = 2
	NoticeFieldClosed    NoticeCode = 3
)

// Notice shows a message box on the client.
type Notice struct {
	Code NoticeCode
	Args []string
}

// Write serializes Notice.
func (p Notice) Write() ([]byte, error) {
	w := packet.Of(OpcodeNotice, 16)
	w.WriteInt(int32(p.Code))
	_ = w.WriteByte(byte(len(p.Args)))
	for _, a := range p.Args {
		w.WriteUnicodeString(a)
	}
	return w.Bytes(), nil
}
