package gameserver

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/ms2go/internal/gameserver/clientpackets"
	"github.com/udisondev/ms2go/internal/gameserver/serverpackets"
)

// readHandshake reads the EnterField message every connection must open with.
func (s *Server) readHandshake(conn *websocket.Conn) (*clientpackets.EnterField, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return nil, fmt.Errorf("setting read deadline: %w", err)
	}
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading handshake: %w", err)
	}
	if kind != websocket.BinaryMessage {
		return nil, fmt.Errorf("%w: message type %d", ErrBadHandshake, kind)
	}

	opcode, payload, err := splitOpcode(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHandshake, err)
	}
	if opcode != clientpackets.OpcodeEnterField {
		return nil, fmt.Errorf("%w: opcode 0x%04X", ErrBadHandshake, opcode)
	}

	enter, err := clientpackets.ParseEnterField(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHandshake, err)
	}
	return enter, nil
}

// splitOpcode separates the uint16 opcode from the message body.
func splitOpcode(msg []byte) (uint16, []byte, error) {
	if len(msg) < 2 {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrShortPacket, len(msg))
	}
	return binary.LittleEndian.Uint16(msg), msg[2:], nil
}

func noticePlayerNotFound(characterID int64) serverpackets.Notice {
	return serverpackets.Notice{
		Code: serverpackets.NoticePlayerNotFound,
		Args: []string{fmt.Sprint(characterID)},
	}
}

func noticeFieldClosed(mapID int32) serverpackets.Notice {
	return serverpackets.Notice{
		Code: serverpackets.NoticeFieldClosed,
		Args: []string{fmt.Sprint(mapID)},
	}
}

func mustWrite(p serverpackets.Notice) []byte {
	msg, _ := p.Write()
	return msg
}

// writeNotice writes directly to a connection that has no session yet.
func writeNotice(conn *websocket.Conn, p serverpackets.Notice) {
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = conn.WriteMessage(websocket.BinaryMessage, mustWrite(p))
	closeWith(conn, websocket.CloseNormalClosure, "")
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(time.Second))
}
