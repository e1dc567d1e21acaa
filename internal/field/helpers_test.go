package field

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/ms2go/internal/model"
)

// testMapID is the map used by every test in the package.
const testMapID int32 = 2000062

// fakeSession records every message sent to it.
type fakeSession struct {
	mu   sync.Mutex
	msgs [][]byte
	err  error
}

func (s *fakeSession) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *fakeSession) messages() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// opcodes returns the opcode of every received message in order.
func (s *fakeSession) opcodes() []uint16 {
	msgs := s.messages()
	out := make([]uint16, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, binary.LittleEndian.Uint16(msg))
	}
	return out
}

func (s *fakeSession) countOpcode(opcode uint16) int {
	n := 0
	for _, op := range s.opcodes() {
		if op == opcode {
			n++
		}
	}
	return n
}

// fakeCatalog is an NpcCatalog that records TryGet lookups.
type fakeCatalog struct {
	mu      sync.Mutex
	npcs    map[int32]*model.NpcMetadata
	tags    map[string][]int32
	lookups []int32
}

func newFakeCatalog(npcs ...*model.NpcMetadata) *fakeCatalog {
	c := &fakeCatalog{
		npcs: make(map[int32]*model.NpcMetadata),
		tags: make(map[string][]int32),
	}
	for _, npc := range npcs {
		c.npcs[npc.ID] = npc
		for _, tag := range npc.Tags {
			c.tags[tag] = append(c.tags[tag], npc.ID)
		}
	}
	return c
}

func (c *fakeCatalog) TryGet(npcID int32) (*model.NpcMetadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups = append(c.lookups, npcID)
	npc, ok := c.npcs[npcID]
	return npc, ok
}

func (c *fakeCatalog) TryLookupTag(tag string) ([]int32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids, ok := c.tags[tag]
	return ids, ok
}

func (c *fakeCatalog) recordedLookups() []int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int32, len(c.lookups))
	copy(out, c.lookups)
	return out
}

func testNpc(id int32, tags ...string) *model.NpcMetadata {
	return &model.NpcMetadata{ID: id, Name: "TestNpc", Level: 1, HP: 100, Tags: tags}
}

// testClock is a settable time source.
type testClock struct {
	now atomic.Int64
}

func newTestClock() *testClock {
	c := &testClock{}
	c.now.Store(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).UnixNano())
	return c
}

func (c *testClock) Now() time.Time { return time.Unix(0, c.now.Load()) }

func (c *testClock) Advance(d time.Duration) time.Time {
	return time.Unix(0, c.now.Add(int64(d)))
}

// observeSyncs runs fn after every actor sync until the test ends. Call it
// before creating fields so their Dispose cleanups run first.
func observeSyncs(t *testing.T, fn func(Actor)) {
	t.Helper()

	prev := actorSynced
	actorSynced = func(_ *Field, a Actor) { fn(a) }
	t.Cleanup(func() { actorSynced = prev })
}

// newTestField creates a field whose tick loop runs exactly once (the
// immediate first tick) and then sleeps for an hour, so tests can drive
// ticks by hand.
func newTestField(t *testing.T, metadata *model.MapMetadata, entities *model.MapEntityMetadata, catalog NpcCatalog, opts ...Option) *Field {
	t.Helper()

	if metadata == nil {
		metadata = &model.MapMetadata{ID: testMapID, Name: "Test Map"}
	}
	if catalog == nil {
		catalog = newFakeCatalog()
	}

	opts = append([]Option{WithTickInterval(time.Hour), WithGlobalIDs(NewIDAllocator(GlobalIDSeed))}, opts...)
	f, err := New(0, metadata, entities, catalog, opts...)
	require.NoError(t, err)
	t.Cleanup(f.Dispose)

	require.Eventually(t, func() bool { return f.Ticks() >= 1 }, time.Second, time.Millisecond)
	return f
}

func testCharacter(id int64, name string) *model.Character {
	return &model.Character{
		ID:       id,
		Name:     name,
		Level:    10,
		MapID:    testMapID,
		Position: model.NewVector3(100, 200, 0),
	}
}

func newTestItem() *model.Item {
	return model.NewItem(0, 20000001, 1)
}
