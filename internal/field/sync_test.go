package field

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ms2go/internal/model"
)

// kindRecorder collects the kinds visited by the tick loop.
type kindRecorder struct {
	mu    sync.Mutex
	kinds []Kind
}

func (r *kindRecorder) record(a Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, a.Kind())
}

func (r *kindRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = nil
}

func (r *kindRecorder) snapshot() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.kinds)
}

// populatedField creates a field with one actor of every kind.
func populatedField(t *testing.T, opts ...Option) *Field {
	t.Helper()

	catalog := newFakeCatalog(testNpc(1, "forest"))
	metadata := &model.MapMetadata{
		ID:     testMapID,
		Spawns: []model.MapSpawn{{ID: 1, Population: 1, Cooldown: 30, Tags: []string{"forest"}}},
	}
	entities := model.NewMapEntityMetadata()
	entities.RegionSpawns[1] = &model.RegionSpawn{ID: 1}
	entities.Portals[1] = &model.Portal{ID: 1}
	entityID := uuid.New()
	entities.BreakableActors[entityID] = &model.BreakableActor{
		EntityID: entityID,
		Position: model.NewVector3(1, 1, 1),
		Rotation: model.NewVector3(0, 0, 1),
	}

	f := newTestField(t, metadata, entities, catalog, opts...)

	_, err := f.AddPlayer(&fakeSession{}, testCharacter(1, "Alice"))
	require.NoError(t, err)
	require.NotNil(t, f.DropItem(newTestItem(), model.Vector3{}, 0))
	require.NotNil(t, f.SpawnNpc(testNpc(2), model.Vector3{}, model.Vector3{}))
	return f
}

func TestField_TickOrder(t *testing.T) {
	rec := &kindRecorder{}
	observeSyncs(t, rec.record)
	f := populatedField(t)

	rec.reset()
	f.tick(time.Now())

	kinds := rec.snapshot()
	assert.True(t, slices.IsSorted(kinds), "kinds visited out of order: %v", kinds)
	assert.Equal(t, []Kind{KindPlayer, KindNpc, KindNpc, KindBreakable, KindItem, KindMobSpawn}, kinds)
	assert.NotContains(t, kinds, KindPortal, "portals are not ticked")
}

func TestField_TickPeriod(t *testing.T) {
	f, err := New(0, &model.MapMetadata{ID: testMapID}, nil, newFakeCatalog(),
		WithTickInterval(10*time.Millisecond))
	require.NoError(t, err)
	defer f.Dispose()

	start := time.Now()
	require.Eventually(t, func() bool { return f.Ticks() >= 5 }, 2*time.Second, time.Millisecond)

	// Five ticks need four full intervals; the first may predate start.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestField_DefaultTickInterval(t *testing.T) {
	f, err := New(0, &model.MapMetadata{ID: testMapID}, nil, newFakeCatalog())
	require.NoError(t, err)
	defer f.Dispose()

	assert.Equal(t, DefaultTickInterval, f.tickInterval)
	assert.Equal(t, 50*time.Millisecond, f.tickInterval)
}

func TestField_NoTicksAfterDispose(t *testing.T) {
	rec := &kindRecorder{}
	observeSyncs(t, rec.record)
	f, err := New(0, &model.MapMetadata{ID: testMapID}, nil, newFakeCatalog(),
		WithTickInterval(time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(f.Dispose)

	_, err = f.AddPlayer(&fakeSession{}, testCharacter(1, "Alice"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 3 }, time.Second, time.Millisecond)

	f.Dispose()
	assert.True(t, f.Disposed())

	ticks := f.Ticks()
	visited := len(rec.snapshot())
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, ticks, f.Ticks(), "no tick may start after Dispose returns")
	assert.Equal(t, visited, len(rec.snapshot()), "no actor may be synced after Dispose returns")

	// Idempotent.
	f.Dispose()
}

func TestField_DisposeRejectsNewPlayers(t *testing.T) {
	f := newTestField(t, nil, nil, nil)
	f.Dispose()

	_, err := f.AddPlayer(&fakeSession{}, testCharacter(1, "Alice"))
	assert.ErrorIs(t, err, ErrFieldDisposed)
}

func TestField_SyncPanicIsolated(t *testing.T) {
	rec := &kindRecorder{}
	observeSyncs(t, func(a Actor) {
		rec.record(a)
		if a.Kind() == KindNpc {
			panic("boom")
		}
	})
	f := populatedField(t)

	rec.reset()
	require.NotPanics(t, func() { f.tick(time.Now()) })

	kinds := rec.snapshot()
	assert.Contains(t, kinds, KindItem, "actors after the failing one are still synced")
	assert.Contains(t, kinds, KindMobSpawn)
}

func TestField_ConcurrentMutationDuringTicks(t *testing.T) {
	f, err := New(0, &model.MapMetadata{ID: testMapID}, nil, newFakeCatalog(),
		WithTickInterval(time.Millisecond),
		WithGlobalIDs(NewIDAllocator(GlobalIDSeed)))
	require.NoError(t, err)
	defer f.Dispose()

	const perG = 200

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perG {
				npc := f.SpawnNpc(testNpc(1), model.Vector3{}, model.Vector3{})
				item := f.DropItem(newTestItem(), model.Vector3{}, 0)
				if i%2 == 0 {
					f.RemoveNpc(npc.ObjectID())
					f.PickupItem(item.ObjectID())
				}
			}
		}()
	}
	for g := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := &fakeSession{}
			for i := range perG {
				p, err := f.AddPlayer(session, testCharacter(int64(g*perG+i), "P"))
				if err != nil {
					continue
				}
				f.RemovePlayer(p.ObjectID())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4*perG/2, f.NpcCount())
	assert.Len(t, f.Items(), 4*perG/2)
	assert.Equal(t, 0, f.PlayerCount())
	assert.Positive(t, f.Ticks())
}
