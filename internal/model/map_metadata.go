package model

import "github.com/google/uuid"

// MapMetadata describes a map as a whole.
type MapMetadata struct {
	ID     int32      `yaml:"id"`
	Name   string     `yaml:"name"`
	Spawns []MapSpawn `yaml:"spawns"`
}

// MapEntityMetadata holds the static entities placed on a map.
// Read-only once handed to a field.
type MapEntityMetadata struct {
	Portals         map[int32]*Portal
	BreakableActors map[uuid.UUID]*BreakableActor
	NpcSpawns       []*SpawnPointNPC
	RegionSpawns    map[int32]*RegionSpawn
}

// NewMapEntityMetadata creates empty entity metadata.
func NewMapEntityMetadata() *MapEntityMetadata {
	return &MapEntityMetadata{
		Portals:         make(map[int32]*Portal),
		BreakableActors: make(map[uuid.UUID]*BreakableActor),
		RegionSpawns:    make(map[int32]*RegionSpawn),
	}
}

// Portal connects a map to a target map/portal.
type Portal struct {
	ID             int32   `yaml:"id"`
	TargetMapID    int32   `yaml:"target_map_id"`
	TargetPortalID int32   `yaml:"target_portal_id"`
	Position       Vector3 `yaml:"position"`
	Rotation       Vector3 `yaml:"rotation"`
	Visible        bool    `yaml:"visible"`
	Enabled        bool    `yaml:"enabled"`
}

// BreakableActor is a breakable prop. Actors without a placement are
// positioned later by gameplay logic.
type BreakableActor struct {
	EntityID uuid.UUID
	Position Vector3
	Rotation Vector3

	// Milliseconds the broken state is kept before reset (0 = never reset).
	ResetTime int32
}

// Placed reports whether the actor carries a pre-defined placement.
func (b *BreakableActor) Placed() bool {
	return !b.Position.IsZero() && !b.Rotation.IsZero()
}
