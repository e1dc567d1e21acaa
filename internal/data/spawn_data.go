package data

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/ms2go/internal/model"
)

// mapFile is the on-disk layout of one map's static level data.
type mapFile struct {
	ID     int32            `yaml:"id"`
	Name   string           `yaml:"name"`
	Spawns []model.MapSpawn `yaml:"spawns"`

	Portals      []*model.Portal        `yaml:"portals"`
	Breakables   []breakableDef         `yaml:"breakables"`
	NpcSpawns    []*model.SpawnPointNPC `yaml:"npc_spawns"`
	RegionSpawns []*model.RegionSpawn   `yaml:"region_spawns"`
}

// breakableDef is a breakable actor as written in data files. EntityID is a uuid string.
type breakableDef struct {
	EntityID  string        `yaml:"entity_id"`
	Position  model.Vector3 `yaml:"position"`
	Rotation  model.Vector3 `yaml:"rotation"`
	ResetTime int32         `yaml:"reset_time"`
}

// toModel converts the file layout into map metadata and entity metadata.
func (m *mapFile) toModel() (*model.MapMetadata, *model.MapEntityMetadata, error) {
	metadata := &model.MapMetadata{
		ID:     m.ID,
		Name:   m.Name,
		Spawns: m.Spawns,
	}

	entities := model.NewMapEntityMetadata()
	for i, portal := range m.Portals {
		if portal == nil {
			return nil, nil, fmt.Errorf("map %d: portals[%d]: %w", m.ID, i, ErrEmptyEntry)
		}
		if _, dup := entities.Portals[portal.ID]; dup {
			return nil, nil, fmt.Errorf("map %d: duplicate portal %d", m.ID, portal.ID)
		}
		entities.Portals[portal.ID] = portal
	}
	for _, def := range m.Breakables {
		entityID, err := uuid.Parse(def.EntityID)
		if err != nil {
			return nil, nil, fmt.Errorf("map %d: breakable entity id %q: %w", m.ID, def.EntityID, err)
		}
		entities.BreakableActors[entityID] = &model.BreakableActor{
			EntityID:  entityID,
			Position:  def.Position,
			Rotation:  def.Rotation,
			ResetTime: def.ResetTime,
		}
	}
	for i, spawnPoint := range m.NpcSpawns {
		if spawnPoint == nil {
			return nil, nil, fmt.Errorf("map %d: npc_spawns[%d]: %w", m.ID, i, ErrEmptyEntry)
		}
	}
	entities.NpcSpawns = m.NpcSpawns
	for i, region := range m.RegionSpawns {
		if region == nil {
			return nil, nil, fmt.Errorf("map %d: region_spawns[%d]: %w", m.ID, i, ErrEmptyEntry)
		}
		entities.RegionSpawns[region.ID] = region
	}

	return metadata, entities, nil
}
