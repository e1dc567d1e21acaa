// Package field implements a running map instance: the live entities of one
// copy of a map, the tick loop that advances them and the lookup/broadcast
// surface used by packet handlers.
package field

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/ms2go/internal/model"
)

// Default timings.
const (
	DefaultTickInterval = 50 * time.Millisecond
	DefaultItemLifetime = 2 * time.Minute
)

// NpcCatalog resolves NPC templates. Used during bring-up and by spawn
// groups topping up their population.
type NpcCatalog interface {
	TryGet(npcID int32) (*model.NpcMetadata, bool)
	TryLookupTag(tag string) ([]int32, bool)
}

// Field is one running copy of a map.
//
// Registries are safe for concurrent use from any goroutine. No operation
// may be issued once Dispose has been called.
type Field struct {
	metadata    *model.MapMetadata
	entities    *model.MapEntityMetadata
	instanceID  int32
	npcMetadata NpcCatalog

	globalIDs *IDAllocator
	localIDs  *IDAllocator

	players    Registry[*FieldPlayer]
	npcs       Registry[*FieldNpc]
	portals    Registry[*FieldPortal]
	portalIDs  Registry[*FieldPortal] // keyed by static portal id
	items      Registry[*FieldItem]
	breakables Registry[*FieldBreakable]
	mobSpawns  Registry[*FieldMobSpawn]

	// Spawn points with a positive regen check interval. Filled during
	// bring-up, read-only afterwards.
	npcSpawns []*model.SpawnPointNPC

	tickInterval time.Duration
	itemLifetime time.Duration
	now          func() time.Time
	ticks        atomic.Int64

	cancel      context.CancelFunc
	done        chan struct{}
	disposeOnce sync.Once
	disposed    atomic.Bool

	log *slog.Logger
}

// Option configures a Field.
type Option func(*Field)

// WithTickInterval overrides the delay between ticks.
func WithTickInterval(d time.Duration) Option {
	return func(f *Field) {
		if d > 0 {
			f.tickInterval = d
		}
	}
}

// WithItemLifetime overrides how long dropped items stay on the field
// (0 = forever).
func WithItemLifetime(d time.Duration) Option {
	return func(f *Field) {
		f.itemLifetime = d
	}
}

// WithGlobalIDs makes the field allocate global ids from a instead of the
// process-wide allocator.
func WithGlobalIDs(a *IDAllocator) Option {
	return func(f *Field) {
		if a != nil {
			f.globalIDs = a
		}
	}
}

// WithClock overrides the time source passed to actor syncs.
func WithClock(now func() time.Time) Option {
	return func(f *Field) {
		if now != nil {
			f.now = now
		}
	}
}

// New creates a field, spawns its static population and starts the tick loop.
// Bring-up is best-effort: missing templates are logged and skipped.
func New(instanceID int32, metadata *model.MapMetadata, entities *model.MapEntityMetadata, npcMetadata NpcCatalog, opts ...Option) (*Field, error) {
	if metadata == nil {
		return nil, ErrNilMetadata
	}
	if entities == nil {
		entities = model.NewMapEntityMetadata()
	}

	f := &Field{
		metadata:     metadata,
		entities:     entities,
		instanceID:   instanceID,
		npcMetadata:  npcMetadata,
		globalIDs:    globalIDs,
		localIDs:     NewIDAllocator(LocalIDSeed),
		tickInterval: DefaultTickInterval,
		itemLifetime: DefaultItemLifetime,
		now:          time.Now,
		done:         make(chan struct{}),
		log:          slog.With("mapID", metadata.ID, "instanceID", instanceID),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.init()

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	go f.run(ctx)

	f.log.Info("field created",
		"portals", f.portals.Len(),
		"npcs", f.npcs.Len(),
		"breakables", f.breakables.Len(),
		"mobSpawns", f.mobSpawns.Len())

	return f, nil
}

// MapID returns the map this field is a copy of.
func (f *Field) MapID() int32 { return f.metadata.ID }

// InstanceID returns the id distinguishing parallel copies of the same map.
func (f *Field) InstanceID() int32 { return f.instanceID }

// Metadata returns the static map metadata.
func (f *Field) Metadata() *model.MapMetadata { return f.metadata }

// NextGlobalID generates an object id unique across all fields.
func (f *Field) NextGlobalID() int32 { return f.globalIDs.Next() }

// NextLocalID generates an object id unique to this field.
func (f *Field) NextLocalID() int32 { return f.localIDs.Next() }

// Ticks returns the number of completed ticks.
func (f *Field) Ticks() int64 { return f.ticks.Load() }

// Disposed reports whether Dispose has been called.
func (f *Field) Disposed() bool { return f.disposed.Load() }

// NpcSpawnPoints returns the spawn points tracked for regeneration.
func (f *Field) NpcSpawnPoints() []*model.SpawnPointNPC {
	out := make([]*model.SpawnPointNPC, len(f.npcSpawns))
	copy(out, f.npcSpawns)
	return out
}

// Dispose stops the tick loop and blocks until it has exited.
// An in-flight tick completes first. Safe to call more than once.
func (f *Field) Dispose() {
	f.disposeOnce.Do(func() {
		f.disposed.Store(true)
		f.cancel()
		<-f.done

		f.log.Info("field disposed", "ticks", f.ticks.Load())
	})
}
