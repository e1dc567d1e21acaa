package clientpackets

// Inbound opcodes (uint16, first two bytes of every client message).
const (
	OpcodeEnterField     uint16 = 0x0001
	OpcodePickupItem     uint16 = 0x0002
	OpcodeBreakBreakable uint16 = 0x0003
	OpcodeMove           uint16 = 0x0004
)
