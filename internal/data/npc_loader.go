package data

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/ms2go/internal/model"
)

// npcFile is the on-disk layout of the NPC catalog.
type npcFile struct {
	Npcs []*model.NpcMetadata `yaml:"npcs"`
}

// LoadNpcMetadata loads the NPC catalog from a YAML (or .yaml.zst) file.
func LoadNpcMetadata(path string) (*NpcMetadataStorage, error) {
	var file npcFile
	if err := decodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("loading npc metadata: %w", err)
	}

	storage := NewNpcMetadataStorage(file.Npcs...)
	slog.Info("loaded NPC metadata", "count", storage.Count(), "path", path)
	return storage, nil
}
