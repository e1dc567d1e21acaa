package model

// NpcMetadata is the static template of an NPC as stored in the NPC catalog.
// Immutable after load; shared by every FieldNpc spawned from it.
type NpcMetadata struct {
	ID    int32    `yaml:"id"`
	Name  string   `yaml:"name"`
	Model string   `yaml:"model"`
	Level int16    `yaml:"level"`
	HP    int64    `yaml:"hp"`
	Tags  []string `yaml:"tags"`

	// Corpse lifetime in milliseconds after death (0 = despawn immediately).
	CorpseTime int32 `yaml:"corpse_time"`
}

// HasTag reports whether the template carries tag.
func (m *NpcMetadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
