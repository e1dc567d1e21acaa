package field

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ms2go/internal/model"
)

// DefaultEmptyDelay is the default time before an empty field is disposed.
const DefaultEmptyDelay = 5 * time.Minute

// MapSource supplies static level data by map id.
type MapSource interface {
	TryGet(mapID int32) (*model.MapMetadata, *model.MapEntityMetadata, bool)
}

// fieldKey identifies one copy of a map.
type fieldKey struct {
	mapID      int32
	instanceID int32
}

// emptyTimer is a pending disposal. Its identity tells a fired timer whether
// it was cancelled after firing but before taking the lock.
type emptyTimer struct {
	timer *time.Timer
}

// Manager owns all running fields of the process.
// Thread-safe for concurrent access.
type Manager struct {
	maps        MapSource
	npcMetadata NpcCatalog
	opts        []Option
	emptyDelay  time.Duration

	mu          sync.Mutex
	fields      map[fieldKey]*Field
	emptyTimers map[fieldKey]*emptyTimer

	nextInstanceID atomic.Int32
}

// NewManager creates a field manager. opts are applied to every field it creates.
func NewManager(maps MapSource, npcMetadata NpcCatalog, emptyDelay time.Duration, opts ...Option) *Manager {
	if emptyDelay <= 0 {
		emptyDelay = DefaultEmptyDelay
	}
	return &Manager{
		maps:        maps,
		npcMetadata: npcMetadata,
		opts:        opts,
		emptyDelay:  emptyDelay,
		fields:      make(map[fieldKey]*Field, 16),
		emptyTimers: make(map[fieldKey]*emptyTimer, 16),
	}
}

// NextInstanceID reserves a fresh instance id for a private copy of a map.
// Instance 0 is the shared copy.
func (m *Manager) NextInstanceID() int32 {
	return m.nextInstanceID.Add(1)
}

// GetOrCreate returns the field for (mapID, instanceID), creating and
// bringing it up if needed. A pending empty-field disposal is cancelled.
func (m *Manager) GetOrCreate(mapID, instanceID int32) (*Field, error) {
	key := fieldKey{mapID: mapID, instanceID: instanceID}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopEmptyTimerLocked(key)

	if f, ok := m.fields[key]; ok {
		return f, nil
	}

	metadata, entities, ok := m.maps.TryGet(mapID)
	if !ok {
		return nil, fmt.Errorf("map %d: %w", mapID, ErrMapNotFound)
	}

	f, err := New(instanceID, metadata, entities, m.npcMetadata, m.opts...)
	if err != nil {
		return nil, fmt.Errorf("creating field %d/%d: %w", mapID, instanceID, err)
	}
	m.fields[key] = f

	return f, nil
}

// Get returns a running field.
func (m *Manager) Get(mapID, instanceID int32) (*Field, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fields[fieldKey{mapID: mapID, instanceID: instanceID}]
	return f, ok
}

// Count returns the number of running fields.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fields)
}

// Release schedules disposal of f if it has no players left. The field is
// kept for the empty delay so that a returning player does not pay for
// another bring-up.
func (m *Manager) Release(f *Field) {
	if f.PlayerCount() > 0 {
		return
	}

	key := fieldKey{mapID: f.MapID(), instanceID: f.InstanceID()}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fields[key] != f {
		return
	}
	m.stopEmptyTimerLocked(key)
	pending := &emptyTimer{}
	pending.timer = time.AfterFunc(m.emptyDelay, func() {
		m.onEmptyTimeout(key, f, pending)
	})
	m.emptyTimers[key] = pending

	slog.Debug("empty field scheduled for disposal",
		"mapID", key.mapID,
		"instanceID", key.instanceID,
		"delay", m.emptyDelay)
}

func (m *Manager) onEmptyTimeout(key fieldKey, f *Field, pending *emptyTimer) {
	m.mu.Lock()
	if m.emptyTimers[key] != pending || m.fields[key] != f || f.PlayerCount() > 0 {
		m.mu.Unlock()
		return
	}
	delete(m.fields, key)
	delete(m.emptyTimers, key)
	m.mu.Unlock()

	f.Dispose()
}

// Dispose stops and forgets the field for (mapID, instanceID).
func (m *Manager) Dispose(mapID, instanceID int32) bool {
	key := fieldKey{mapID: mapID, instanceID: instanceID}

	m.mu.Lock()
	f, ok := m.fields[key]
	if ok {
		delete(m.fields, key)
		m.stopEmptyTimerLocked(key)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	f.Dispose()
	return true
}

// Shutdown disposes every field concurrently and waits for all tick loops
// to stop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	fields := make([]*Field, 0, len(m.fields))
	for key, f := range m.fields {
		fields = append(fields, f)
		m.stopEmptyTimerLocked(key)
	}
	clear(m.fields)
	m.mu.Unlock()

	var g errgroup.Group
	for _, f := range fields {
		g.Go(func() error {
			f.Dispose()
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("field manager stopped", "fields", len(fields))
}

// stopEmptyTimerLocked cancels a pending empty-field disposal.
// Must be called with mu held.
func (m *Manager) stopEmptyTimerLocked(key fieldKey) {
	if pending, ok := m.emptyTimers[key]; ok {
		pending.timer.Stop()
		delete(m.emptyTimers, key)
	}
}
