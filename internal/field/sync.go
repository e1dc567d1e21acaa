package field

import (
	"context"
	"time"
)

// run is the tick loop. Cancellation is observed only between ticks, so a
// tick that has started always completes.
func (f *Field) run(ctx context.Context) {
	defer close(f.done)

	timer := time.NewTimer(f.tickInterval)
	defer timer.Stop()

	f.log.Debug("field tick loop started", "interval", f.tickInterval)

	for {
		if ctx.Err() != nil {
			return
		}

		f.tick(f.now())

		timer.Reset(f.tickInterval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// tick advances every registered actor once.
// Order: players, NPCs, breakables, items, spawn groups.
func (f *Field) tick(now time.Time) {
	syncAll(f, &f.players, now)
	syncAll(f, &f.npcs, now)
	syncAll(f, &f.breakables, now)
	syncAll(f, &f.items, now)
	syncAll(f, &f.mobSpawns, now)

	f.ticks.Add(1)
}

func syncAll[E Actor](f *Field, r *Registry[E], now time.Time) {
	r.Range(func(_ int32, a E) bool {
		f.syncActor(a, now)
		return true
	})
}

// syncActor isolates a single actor's failure from the rest of the pass.
func (f *Field) syncActor(a Actor, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("actor sync panicked",
				"kind", a.Kind(),
				"objectID", a.ObjectID(),
				"error", r)
		}
	}()

	a.sync(now)
	actorSynced(f, a)
}

// actorSynced observes every completed actor sync. Tests swap it.
var actorSynced = func(*Field, Actor) {}
