package model

// Character is the persistent character record of a player.
type Character struct {
	ID        int64
	AccountID int64
	Name      string
	Level     int16
	MapID     int32
	Position  Vector3
}
