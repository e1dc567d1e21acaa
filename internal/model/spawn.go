package model

// SpawnPointNPC is a static NPC spawn point of a map.
type SpawnPointNPC struct {
	ID       int32   `yaml:"id"`
	Position Vector3 `yaml:"position"`
	Rotation Vector3 `yaml:"rotation"`

	// Candidate NPC template ids. Only the first one is used for
	// spawn-on-create (see field.spawnNpcPoints).
	NpcIDs   []int32 `yaml:"npc_ids"`
	NpcCount int32   `yaml:"npc_count"`

	SpawnOnFieldCreate bool `yaml:"spawn_on_field_create"`

	// Regen check interval in milliseconds (0 = never regenerated).
	RegenCheckTime int32 `yaml:"regen_check_time"`
}

// RegionSpawn is a placement area referenced by MapSpawn.ID.
type RegionSpawn struct {
	ID       int32   `yaml:"id"`
	Position Vector3 `yaml:"position"`
	Rotation Vector3 `yaml:"rotation"`
}

// MapSpawn is a tag-based population definition of a map.
// NPC candidates are derived from the catalog by Tags at field creation.
type MapSpawn struct {
	ID         int32    `yaml:"id"`
	Population int32    `yaml:"population"`
	Cooldown   int32    `yaml:"cooldown"` // seconds between regen top-ups
	Tags       []string `yaml:"tags"`
}
