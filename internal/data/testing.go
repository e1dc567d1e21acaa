package data

import "github.com/udisondev/ms2go/internal/model"

// NewTestNpc creates an NPC template for tests from other packages.
func NewTestNpc(id int32, tags ...string) *model.NpcMetadata {
	return &model.NpcMetadata{
		ID:    id,
		Name:  "TestNpc",
		Level: 1,
		HP:    100,
		Tags:  tags,
	}
}
