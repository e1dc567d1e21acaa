package gameserver

import "errors"

// Sentinel errors for the game server.
var (
	ErrSendQueueFull = errors.New("send queue full")
	ErrSessionClosed = errors.New("session closed")
	ErrBadHandshake  = errors.New("bad handshake")
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrShortPacket   = errors.New("packet too short")
)
