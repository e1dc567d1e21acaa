package gameserver

// SessionState represents the state machine of a client connection.
type SessionState int32

const (
	SessionStateConnected    SessionState = iota // websocket upgraded, waiting for EnterField
	SessionStateEntering                         // character resolved, joining the field
	SessionStateInField                          // player registered in a field
	SessionStateDisconnected                     // connection closed
)

func (s SessionState) String() string {
	switch s {
	case SessionStateConnected:
		return "CONNECTED"
	case SessionStateEntering:
		return "ENTERING"
	case SessionStateInField:
		return "IN_FIELD"
	case SessionStateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
