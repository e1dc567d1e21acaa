package serverpackets

// Outbound opcodes (uint16, first two bytes of every message).
const (
	OpcodeFieldEntered    uint16 = 0x0017
	OpcodeFieldAddUser    uint16 = 0x0018
	OpcodeFieldRemoveUser uint16 = 0x0019
	OpcodeFieldAddItem    uint16 = 0x0020
	OpcodeFieldRemoveItem uint16 = 0x0021
	OpcodeFieldAddNpc     uint16 = 0x0022
	OpcodeFieldRemoveNpc  uint16 = 0x0023
	OpcodeFieldPortal     uint16 = 0x0025
	OpcodeBreakable       uint16 = 0x0029
	OpcodeNotice          uint16 = 0x0047
)
